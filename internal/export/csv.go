// Package export renders the calculated product view into downloadable
// files. Raw fields are written verbatim; derived metrics are rounded to
// two decimals for readability.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/profitlens/backend-go/internal/domain"
)

var columns = []string{
	"id",
	"name",
	"category",
	"supplier",
	"purchasePrice",
	"sellingPrice",
	"unitsSoldWeek",
	"stockLevel",
	"margin",
	"weeklyProfit",
	"weeklyRevenue",
	"inventoryTurnover",
	"sellThroughRate",
}

// CSV renders the product view as a CSV document.
func CSV(products []domain.CalculatedProduct) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, p := range products {
		if err := w.Write(row(p)); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func row(p domain.CalculatedProduct) []string {
	stock := ""
	if p.StockLevel != nil {
		stock = strconv.Itoa(*p.StockLevel)
	}

	return []string{
		strconv.FormatInt(p.ID, 10),
		p.Name,
		p.Category,
		p.Supplier,
		raw(p.PurchasePrice),
		raw(p.SellingPrice),
		strconv.Itoa(p.UnitsSoldWeek),
		stock,
		money(p.Margin),
		money(p.WeeklyProfit),
		money(p.WeeklyRevenue),
		money(p.InventoryTurnover),
		money(p.SellThroughRate),
	}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// raw writes an entered field without rounding; only derived metrics get
// the two-decimal treatment.
func raw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
