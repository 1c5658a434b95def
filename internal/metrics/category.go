package metrics

import (
	"sort"

	"github.com/profitlens/backend-go/internal/domain"
)

// RevenueByCategory sums weekly revenue per category, descending by total.
// Uncategorized records are excluded, and so are zero-revenue records; a
// category whose only record has no sales does not get a key here, even
// though MarginByCategory still counts that record. The two rollups are
// deliberately asymmetric; see DESIGN.md before changing either.
func RevenueByCategory(products []domain.CalculatedProduct) []domain.CategoryStat {
	totals := make(map[string]float64)
	order := make([]string, 0)

	for _, p := range products {
		if p.Category == "" || p.WeeklyRevenue == 0 {
			continue
		}
		if _, seen := totals[p.Category]; !seen {
			order = append(order, p.Category)
		}
		totals[p.Category] += p.WeeklyRevenue
	}

	return sortedStats(order, totals)
}

// MarginByCategory averages the per-record margin per category, descending.
// Every categorized record counts, including zero-revenue ones.
func MarginByCategory(products []domain.CalculatedProduct) []domain.CategoryStat {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, seen := counts[p.Category]; !seen {
			order = append(order, p.Category)
		}
		sums[p.Category] += p.Margin
		counts[p.Category]++
	}

	averages := make(map[string]float64, len(sums))
	for name, sum := range sums {
		averages[name] = sum / float64(counts[name])
	}

	return sortedStats(order, averages)
}

// ByCategory bundles both rollups for the category charts.
func ByCategory(products []domain.CalculatedProduct) domain.CategoryBreakdown {
	return domain.CategoryBreakdown{
		Revenue:   RevenueByCategory(products),
		AvgMargin: MarginByCategory(products),
	}
}

// sortedStats orders categories descending by value; ties keep
// first-encountered order.
func sortedStats(order []string, values map[string]float64) []domain.CategoryStat {
	stats := make([]domain.CategoryStat, 0, len(order))
	for _, name := range order {
		stats = append(stats, domain.CategoryStat{Name: name, Value: values[name]})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Value > stats[j].Value
	})
	return stats
}
