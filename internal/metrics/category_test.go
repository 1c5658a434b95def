package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitlens/backend-go/internal/domain"
)

func TestRevenueByCategory(t *testing.T) {
	products := []domain.CalculatedProduct{
		{Product: domain.Product{Name: "a", Category: "Dairy"}, WeeklyRevenue: 100},
		{Product: domain.Product{Name: "b", Category: "Bakery"}, WeeklyRevenue: 300},
		{Product: domain.Product{Name: "c", Category: "Dairy"}, WeeklyRevenue: 50},
		{Product: domain.Product{Name: "d"}, WeeklyRevenue: 999}, // uncategorized
	}

	got := RevenueByCategory(products)
	require.Len(t, got, 2)
	assert.Equal(t, domain.CategoryStat{Name: "Bakery", Value: 300}, got[0])
	assert.Equal(t, domain.CategoryStat{Name: "Dairy", Value: 150}, got[1])
}

func TestRevenueGateAndMarginAsymmetry(t *testing.T) {
	// A lone zero-revenue record must not establish its category in the
	// revenue rollup, but still counts toward the category's margin mean.
	products := []domain.CalculatedProduct{
		{Product: domain.Product{Name: "dormant", Category: "X"}, WeeklyRevenue: 0, Margin: 40},
		{Product: domain.Product{Name: "active", Category: "Y"}, WeeklyRevenue: 10, Margin: 20},
	}

	revenue := RevenueByCategory(products)
	require.Len(t, revenue, 1)
	assert.Equal(t, "Y", revenue[0].Name)

	margin := MarginByCategory(products)
	require.Len(t, margin, 2)
	assert.Equal(t, domain.CategoryStat{Name: "X", Value: 40}, margin[0])
	assert.Equal(t, domain.CategoryStat{Name: "Y", Value: 20}, margin[1])
}

func TestMarginByCategoryAveraging(t *testing.T) {
	products := []domain.CalculatedProduct{
		{Product: domain.Product{Name: "a", Category: "Dairy"}, Margin: 30, WeeklyRevenue: 1},
		{Product: domain.Product{Name: "b", Category: "Dairy"}, Margin: 50, WeeklyRevenue: 1},
		{Product: domain.Product{Name: "c", Category: "Drinks"}, Margin: 35, WeeklyRevenue: 1},
	}

	got := MarginByCategory(products)
	require.Len(t, got, 2)
	assert.Equal(t, domain.CategoryStat{Name: "Dairy", Value: 40}, got[0])
	assert.Equal(t, domain.CategoryStat{Name: "Drinks", Value: 35}, got[1])
}

func TestCategoryTiesKeepFirstEncounteredOrder(t *testing.T) {
	products := []domain.CalculatedProduct{
		{Product: domain.Product{Name: "a", Category: "Alpha"}, WeeklyRevenue: 100},
		{Product: domain.Product{Name: "b", Category: "Beta"}, WeeklyRevenue: 100},
	}

	got := RevenueByCategory(products)
	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].Name)
	assert.Equal(t, "Beta", got[1].Name)
}

func TestByCategoryEmptyInput(t *testing.T) {
	breakdown := ByCategory(nil)
	assert.Empty(t, breakdown.Revenue)
	assert.Empty(t, breakdown.AvgMargin)
}
