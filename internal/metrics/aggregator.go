package metrics

import (
	"math"
	"math/rand"
	"sort"

	"github.com/profitlens/backend-go/internal/domain"
)

// TrendPoints is the length of the synthetic KPI history series.
const TrendPoints = 7

// RandSource yields values in [0,1) for trend perturbation. Injected so
// tests can pin the sequence.
type RandSource func() float64

// Aggregator folds a calculated product view into dashboard KPIs.
type Aggregator struct {
	rand RandSource
}

// NewAggregator builds an Aggregator; a nil source falls back to the
// package-level math/rand generator.
func NewAggregator(src RandSource) *Aggregator {
	if src == nil {
		src = rand.Float64
	}
	return &Aggregator{rand: src}
}

// Aggregate computes the dashboard KPIs for a filtered product view. Empty
// input yields all-zero metrics, a nil top product and empty trend series.
// AverageMargin is the plain mean of the per-record margins, not weighted
// by revenue or volume.
func (a *Aggregator) Aggregate(products []domain.CalculatedProduct) domain.DashboardMetrics {
	m := domain.DashboardMetrics{
		ProfitTrend: []float64{},
		MarginTrend: []float64{},
	}
	if len(products) == 0 {
		return m
	}

	for _, p := range products {
		m.TotalWeeklyProfit += p.WeeklyProfit
		m.TotalWeeklyRevenue += p.WeeklyRevenue
		m.AverageMargin += p.Margin
	}
	m.AverageMargin /= float64(len(products))

	// Stable sort: records with equal profit keep their input order, so the
	// first of a tied pair wins the top spot.
	ranked := make([]domain.CalculatedProduct, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].WeeklyProfit > ranked[j].WeeklyProfit
	})
	top := ranked[0]
	m.TopProductByProfit = &top

	m.ProfitTrend = a.TrendSeries(m.TotalWeeklyProfit)
	m.MarginTrend = a.TrendSeries(m.AverageMargin)

	return m
}

// TrendSeries synthesizes an illustrative 7-point history ending at v.
// Every earlier point perturbs the current value itself rather than the
// previously generated point, so the series hugs v instead of drifting
// like a compounding random walk.
func (a *Aggregator) TrendSeries(v float64) []float64 {
	if v == 0 {
		return make([]float64, TrendPoints)
	}

	series := make([]float64, 0, TrendPoints)
	series = append(series, v)
	for i := 0; i < TrendPoints-1; i++ {
		delta := (a.rand() - 0.45) * 0.15 * v
		series = append([]float64{math.Max(0, v-delta)}, series...)
	}
	return series
}
