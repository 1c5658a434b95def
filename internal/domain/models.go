package domain

import "time"

// Product is a raw product record as entered by the owner or produced by a
// bulk import. Prices are positive currency amounts with
// SellingPrice >= PurchasePrice, enforced at the entry points before a
// record reaches the compute layer.
type Product struct {
	ID            int64    `json:"id" db:"id"`
	Name          string   `json:"name" db:"name"`
	PurchasePrice float64  `json:"purchasePrice" db:"purchase_price"`
	SellingPrice  float64  `json:"sellingPrice" db:"selling_price"`
	UnitsSoldWeek int      `json:"unitsSoldWeek" db:"units_sold_week"`
	Category      string   `json:"category,omitempty" db:"category"`
	Supplier      string   `json:"supplier,omitempty" db:"supplier"`
	StockLevel    *int     `json:"stockLevel,omitempty" db:"stock_level"`
}

// ProductInput is a product without an identity yet: manual form entry or a
// row extracted from an uploaded file.
type ProductInput struct {
	Name          string  `json:"name"`
	PurchasePrice float64 `json:"purchasePrice"`
	SellingPrice  float64 `json:"sellingPrice"`
	UnitsSoldWeek int     `json:"unitsSoldWeek"`
	Category      string  `json:"category,omitempty"`
	Supplier      string  `json:"supplier,omitempty"`
	StockLevel    *int    `json:"stockLevel,omitempty"`
}

// NewProductID derives a fresh product id from the wall clock. Bulk loads
// offset by index so records created in the same millisecond stay unique.
func NewProductID(offset int) int64 {
	return time.Now().UnixMilli() + int64(offset)
}

// CalculatedProduct is a Product plus its derived metrics. It is never
// stored: the metrics are recomputed from the raw record whenever the
// product list changes.
type CalculatedProduct struct {
	Product
	Margin            float64 `json:"margin"`
	WeeklyProfit      float64 `json:"weeklyProfit"`
	WeeklyRevenue     float64 `json:"weeklyRevenue"`
	InventoryTurnover float64 `json:"inventoryTurnover"`
	SellThroughRate   float64 `json:"sellThroughRate"`
}

// Stock returns the on-hand inventory, treating a missing stock level as 0.
func (p Product) Stock() int {
	if p.StockLevel == nil {
		return 0
	}
	return *p.StockLevel
}

// DashboardMetrics are the KPI values shown at the top of the dashboard,
// computed from the currently filtered product view.
type DashboardMetrics struct {
	TotalWeeklyProfit  float64            `json:"totalWeeklyProfit"`
	TotalWeeklyRevenue float64            `json:"totalWeeklyRevenue"`
	AverageMargin      float64            `json:"averageMargin"`
	TopProductByProfit *CalculatedProduct `json:"topProductByProfit"`
	ProfitTrend        []float64          `json:"profitTrend"`
	MarginTrend        []float64          `json:"marginTrend"`
}

// CategoryStat is one category's aggregated value in a rollup, ordered for
// display (descending by value).
type CategoryStat struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CategoryBreakdown bundles the two per-category rollups used by the
// category charts and drill-down filter.
type CategoryBreakdown struct {
	Revenue   []CategoryStat `json:"revenue"`
	AvgMargin []CategoryStat `json:"avgMargin"`
}

// ProductFilter narrows the calculated product view. An empty search term
// matches everything; a nil Category passes all records.
type ProductFilter struct {
	Search   string  `json:"search"`
	Category *string `json:"category"`
}

// ForecastedProduct is a calculated product enriched with the AI sales
// forecast and the resulting reorder suggestion.
type ForecastedProduct struct {
	CalculatedProduct
	ForecastedSales   int    `json:"forecastedSales"`
	ReorderSuggestion string `json:"reorderSuggestion"`
}

// ComplianceTask is a single entry of the AI-generated compliance checklist.
type ComplianceTask struct {
	Task    string `json:"task"`
	Details string `json:"details"`
}

// PromoSimulation is the outcome of the marketing promotion simulator for a
// single product.
type PromoSimulation struct {
	ProductID       int64   `json:"productId"`
	DiscountPercent float64 `json:"discountPercent"`
	LiftPercent     float64 `json:"liftPercent"`
	NewPrice        float64 `json:"newPrice"`
	CurrentProfit   float64 `json:"currentProfit"`
	SimulatedProfit float64 `json:"simulatedProfit"`
	Advice          string  `json:"advice,omitempty"`
}
