package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitlens/backend-go/internal/domain"
)

// seqSource replays a fixed sequence, wrapping around.
func seqSource(values ...float64) RandSource {
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	m := NewAggregator(seqSource(0.5)).Aggregate(nil)

	assert.Zero(t, m.TotalWeeklyProfit)
	assert.Zero(t, m.TotalWeeklyRevenue)
	assert.Zero(t, m.AverageMargin)
	assert.Nil(t, m.TopProductByProfit)
	assert.Empty(t, m.ProfitTrend)
	assert.Empty(t, m.MarginTrend)
}

func TestAggregateSingleProduct(t *testing.T) {
	products := CalculateAll([]domain.Product{
		{ID: 1, Name: "Milk", PurchasePrice: 2, SellingPrice: 4, UnitsSoldWeek: 10, StockLevel: intPtr(5)},
	})

	m := NewAggregator(seqSource(0.5)).Aggregate(products)

	assert.InDelta(t, 20.0, m.TotalWeeklyProfit, 1e-9)
	assert.InDelta(t, 40.0, m.TotalWeeklyRevenue, 1e-9)
	assert.InDelta(t, 50.0, m.AverageMargin, 1e-9)
	require.NotNil(t, m.TopProductByProfit)
	assert.Equal(t, "Milk", m.TopProductByProfit.Name)
}

func TestAggregateUnweightedMargin(t *testing.T) {
	// A single high-margin low-volume item pulls the average exactly as
	// hard as a high-volume one.
	products := []domain.CalculatedProduct{
		{Product: domain.Product{Name: "bulk"}, Margin: 10, WeeklyProfit: 1000},
		{Product: domain.Product{Name: "niche"}, Margin: 90, WeeklyProfit: 1},
	}

	m := NewAggregator(seqSource(0.5)).Aggregate(products)
	assert.InDelta(t, 50.0, m.AverageMargin, 1e-9)
}

func TestAggregateTopPickStability(t *testing.T) {
	products := []domain.CalculatedProduct{
		{Product: domain.Product{ID: 1, Name: "low"}, WeeklyProfit: 10},
		{Product: domain.Product{ID: 2, Name: "first-high"}, WeeklyProfit: 20},
		{Product: domain.Product{ID: 3, Name: "second-high"}, WeeklyProfit: 20},
	}

	m := NewAggregator(seqSource(0.5)).Aggregate(products)
	require.NotNil(t, m.TopProductByProfit)
	assert.Equal(t, int64(2), m.TopProductByProfit.ID, "first of the tied pair wins")
}

func TestAggregateDoesNotMutateInput(t *testing.T) {
	products := []domain.CalculatedProduct{
		{Product: domain.Product{ID: 1}, WeeklyProfit: 1},
		{Product: domain.Product{ID: 2}, WeeklyProfit: 2},
	}

	NewAggregator(seqSource(0.5)).Aggregate(products)
	assert.Equal(t, int64(1), products[0].ID, "input order preserved")
	assert.Equal(t, int64(2), products[1].ID)
}

func TestTrendSeriesStructure(t *testing.T) {
	// The series is random, so assert structure only: length,
	// terminal value and non-negativity.
	agg := NewAggregator(seqSource(0.1, 0.9, 0.45, 0.0, 0.99, 0.3))

	series := agg.TrendSeries(120)
	require.Len(t, series, TrendPoints)
	assert.Equal(t, 120.0, series[len(series)-1])
	for i, v := range series {
		assert.GreaterOrEqual(t, v, 0.0, "point %d", i)
	}
}

func TestTrendSeriesZeroValue(t *testing.T) {
	series := NewAggregator(seqSource(0.9)).TrendSeries(0)
	require.Len(t, series, TrendPoints)
	for _, v := range series {
		assert.Zero(t, v)
	}
}

func TestTrendSeriesDoesNotCompound(t *testing.T) {
	// Every perturbation is taken off the current value itself. With a
	// constant source each generated point is therefore identical instead
	// of drifting further per step.
	agg := NewAggregator(seqSource(0.95))

	series := agg.TrendSeries(100)
	require.Len(t, series, TrendPoints)
	want := 100 - (0.95-0.45)*0.15*100
	for i := 0; i < TrendPoints-1; i++ {
		assert.InDelta(t, want, series[i], 1e-9, "point %d", i)
	}
	assert.Equal(t, 100.0, series[TrendPoints-1])
}
