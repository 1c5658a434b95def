package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/profitlens/backend-go/internal/domain"
	"github.com/profitlens/backend-go/internal/metrics"
)

func intPtr(v int) *int { return &v }

func sampleProducts() []domain.CalculatedProduct {
	return metrics.CalculateAll([]domain.Product{
		{ID: 1, Name: "Organic Milk", Category: "Dairy", Supplier: "Farm Fresh Inc.", PurchasePrice: 2.5, SellingPrice: 4.5, UnitsSoldWeek: 100, StockLevel: intPtr(50)},
		{ID: 2, Name: "Loose Leaf Tea", PurchasePrice: 3, SellingPrice: 7.5, UnitsSoldWeek: 20},
	})
}

func TestCSV(t *testing.T) {
	data, err := CSV(sampleProducts())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, columns, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "Organic Milk", records[1][1])
	assert.Equal(t, "50", records[1][7])
	assert.Equal(t, "2.5", records[1][4], "entered prices stay unrounded")
	assert.Equal(t, "4.5", records[1][5])
	assert.Equal(t, "44.44", records[1][8], "margin rounds to two decimals")
	assert.Equal(t, "200.00", records[1][9])

	// Absent optional fields stay blank rather than zero.
	assert.Equal(t, "", records[2][2])
	assert.Equal(t, "", records[2][7])
}

func TestCSVKeepsEnteredPrecision(t *testing.T) {
	products := metrics.CalculateAll([]domain.Product{
		{ID: 3, Name: "Saffron 1g", PurchasePrice: 4.999, SellingPrice: 8.275, UnitsSoldWeek: 3},
	})

	data, err := CSV(products)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "4.999", records[1][4])
	assert.Equal(t, "8.275", records[1][5])
	assert.Equal(t, "39.59", records[1][8], "derived metrics still round")
}

func TestCSVEmptyList(t *testing.T) {
	data, err := CSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}

func TestXLSX(t *testing.T) {
	data, err := XLSX(sampleProducts())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "name", rows[0][1])
	assert.Equal(t, "Organic Milk", rows[1][1])

	profit, err := f.GetCellValue(sheetName, "J2")
	require.NoError(t, err)
	assert.Equal(t, "200", profit)
}
