package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitlens/backend-go/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Product
		want domain.CalculatedProduct
	}{
		{
			name: "typical record",
			in:   domain.Product{ID: 1, Name: "Milk", PurchasePrice: 2, SellingPrice: 4, UnitsSoldWeek: 10, StockLevel: intPtr(5)},
			want: domain.CalculatedProduct{
				Margin:            50,
				WeeklyProfit:      20,
				WeeklyRevenue:     40,
				InventoryTurnover: 2,
				SellThroughRate:   100.0 * 10 / 15,
			},
		},
		{
			name: "zero selling price yields zero margin",
			in:   domain.Product{Name: "Freebie", PurchasePrice: 1, SellingPrice: 0, UnitsSoldWeek: 3, StockLevel: intPtr(10)},
			want: domain.CalculatedProduct{
				Margin:            0,
				WeeklyProfit:      -3,
				WeeklyRevenue:     0,
				InventoryTurnover: 0.3,
				SellThroughRate:   100.0 * 3 / 13,
			},
		},
		{
			name: "missing stock level treated as zero",
			in:   domain.Product{Name: "Bread", PurchasePrice: 1, SellingPrice: 2, UnitsSoldWeek: 8},
			want: domain.CalculatedProduct{
				Margin:            50,
				WeeklyProfit:      8,
				WeeklyRevenue:     16,
				InventoryTurnover: 0,
				SellThroughRate:   100,
			},
		},
		{
			name: "no sales and no stock",
			in:   domain.Product{Name: "Dormant", PurchasePrice: 2, SellingPrice: 5, UnitsSoldWeek: 0, StockLevel: intPtr(0)},
			want: domain.CalculatedProduct{
				Margin:            60,
				WeeklyProfit:      0,
				WeeklyRevenue:     0,
				InventoryTurnover: 0,
				SellThroughRate:   0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.in)
			assert.Equal(t, tt.in, got.Product, "raw record carried unchanged")
			assert.InDelta(t, tt.want.Margin, got.Margin, 1e-9)
			assert.InDelta(t, tt.want.WeeklyProfit, got.WeeklyProfit, 1e-9)
			assert.InDelta(t, tt.want.WeeklyRevenue, got.WeeklyRevenue, 1e-9)
			assert.InDelta(t, tt.want.InventoryTurnover, got.InventoryTurnover, 1e-9)
			assert.InDelta(t, tt.want.SellThroughRate, got.SellThroughRate, 1e-9)
		})
	}
}

func TestCalculateProfitIdentity(t *testing.T) {
	// No rounding inside the compute layer: profit must equal the exact
	// product of spread and volume.
	products := domain.SeedProducts()
	for _, p := range products {
		got := Calculate(p)
		require.Equal(t, (p.SellingPrice-p.PurchasePrice)*float64(p.UnitsSoldWeek), got.WeeklyProfit, p.Name)
	}
}

func TestCalculateAll(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "A", PurchasePrice: 1, SellingPrice: 2, UnitsSoldWeek: 5},
		{ID: 2, Name: "B", PurchasePrice: 2, SellingPrice: 4, UnitsSoldWeek: 10},
	}

	calculated := CalculateAll(products)
	require.Len(t, calculated, 2)
	assert.Equal(t, int64(1), calculated[0].ID)
	assert.Equal(t, int64(2), calculated[1].ID)
	assert.InDelta(t, 5.0, calculated[0].WeeklyProfit, 1e-9)
	assert.InDelta(t, 20.0, calculated[1].WeeklyProfit, 1e-9)

	assert.Empty(t, CalculateAll(nil))
}
