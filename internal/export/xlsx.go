package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/profitlens/backend-go/internal/domain"
)

const sheetName = "Products"

// XLSX renders the product view as a single-sheet spreadsheet with the same
// columns as the CSV export. Numeric cells stay numeric so the sheet sorts
// and sums correctly.
func XLSX(products []domain.CalculatedProduct) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for r, p := range products {
		values := []any{
			p.ID,
			p.Name,
			p.Category,
			p.Supplier,
			p.PurchasePrice,
			p.SellingPrice,
			p.UnitsSoldWeek,
			nil,
			round2(p.Margin),
			round2(p.WeeklyProfit),
			round2(p.WeeklyRevenue),
			round2(p.InventoryTurnover),
			round2(p.SellThroughRate),
		}
		if p.StockLevel != nil {
			values[7] = *p.StockLevel
		}

		for c, v := range values {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", r+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
