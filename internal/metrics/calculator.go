// Package metrics is the pure compute layer of the dashboard: it turns raw
// product records into derived per-product metrics, KPI aggregates,
// category rollups, filtered views and widget layouts. Every function here
// is deterministic (trend generation excepted, see Aggregator) and total;
// numeric edge cases fall back to zero instead of failing.
package metrics

import "github.com/profitlens/backend-go/internal/domain"

// Calculate derives the per-product metrics from a raw record. A zero
// selling price yields a zero margin, and a missing or zero stock level
// yields zero turnover rather than a division error.
func Calculate(p domain.Product) domain.CalculatedProduct {
	cp := domain.CalculatedProduct{Product: p}

	if p.SellingPrice > 0 {
		cp.Margin = (p.SellingPrice - p.PurchasePrice) / p.SellingPrice * 100
	}
	cp.WeeklyProfit = (p.SellingPrice - p.PurchasePrice) * float64(p.UnitsSoldWeek)
	cp.WeeklyRevenue = p.SellingPrice * float64(p.UnitsSoldWeek)

	stock := p.Stock()
	if stock > 0 {
		cp.InventoryTurnover = float64(p.UnitsSoldWeek) / float64(stock)
	}
	if beginning := p.UnitsSoldWeek + stock; beginning > 0 {
		cp.SellThroughRate = float64(p.UnitsSoldWeek) / float64(beginning) * 100
	}

	return cp
}

// CalculateAll maps Calculate over a product list. Records are independent,
// so the cost is linear in the list size.
func CalculateAll(products []domain.Product) []domain.CalculatedProduct {
	calculated := make([]domain.CalculatedProduct, len(products))
	for i, p := range products {
		calculated[i] = Calculate(p)
	}
	return calculated
}
