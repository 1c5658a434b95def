package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitlens/backend-go/internal/domain"
)

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		needle   string
		haystack string
		want     bool
	}{
		{"ogc", "organic", true},
		{"gco", "organic", false},
		{"", "anything", true},
		{"", "", true},
		{"x", "", false},
		{"organic", "organic", true},
		{"organik", "organic", false},
		{"toolong", "short", false},
		{"ok", "oak", true},
		{"åæ", "blåbær", true},
		{"é", "crème", true},
		{"é", "creme", false},
		// "Ã©" contains the needle's encoded bytes split across two
		// runes; a byte-wise scan would falsely accept this.
		{"é", "Ã©", false},
	}

	for _, tt := range tests {
		t.Run(tt.needle+"/"+tt.haystack, func(t *testing.T) {
			assert.Equal(t, tt.want, FuzzyMatch(tt.needle, tt.haystack))
		})
	}
}

func testCatalog() []domain.CalculatedProduct {
	return CalculateAll([]domain.Product{
		{ID: 1, Name: "Organic Milk", Category: "Dairy", Supplier: "Farm Fresh Inc.", SellingPrice: 4, PurchasePrice: 2, UnitsSoldWeek: 10},
		{ID: 2, Name: "Artisan Bread", Category: "Bakery", Supplier: "Local Breads Co.", SellingPrice: 3, PurchasePrice: 1, UnitsSoldWeek: 5},
		{ID: 3, Name: "Craft Soda", Category: "Drinks", SellingPrice: 2, PurchasePrice: 1, UnitsSoldWeek: 20},
	})
}

func TestFilterBlankSearchMatchesAll(t *testing.T) {
	got := Filter(testCatalog(), "   ", nil)
	assert.Len(t, got, 3)
}

func TestFilterTokensAreANDed(t *testing.T) {
	products := CalculateAll([]domain.Product{
		{ID: 1, Name: "Organic Milk", SellingPrice: 4, PurchasePrice: 2, UnitsSoldWeek: 10},
	})

	// "milk" matches but "dairy" cannot: the record has no category, so
	// the unmatched token excludes it.
	assert.Empty(t, Filter(products, "milk dairy", nil))
	assert.Len(t, Filter(products, "milk", nil), 1)
}

func TestFilterSearchesCategoryAndSupplier(t *testing.T) {
	got := Filter(testCatalog(), "farm", nil)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	got = Filter(testCatalog(), "bakery", nil)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestFilterCategory(t *testing.T) {
	dairy := "Dairy"
	got := Filter(testCatalog(), "", &dairy)
	require.Len(t, got, 1)
	assert.Equal(t, "Organic Milk", got[0].Name)

	missing := "Frozen"
	assert.Empty(t, Filter(testCatalog(), "", &missing))
}

func TestFilterPreservesInputOrder(t *testing.T) {
	got := Filter(testCatalog(), "a", nil) // subsequence "a" hits all three
	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, int64(3), got[2].ID)
}

func TestSuggestions(t *testing.T) {
	catalog := testCatalog()

	got := Suggestions(catalog, "mil", 5)
	assert.Equal(t, []string{"Organic Milk"}, got)

	// Exact match is never suggested back.
	assert.Empty(t, Suggestions(catalog, "organic milk", 5))

	// Blank terms suggest nothing.
	assert.Empty(t, Suggestions(catalog, "  ", 5))

	// Limit is honored.
	got = Suggestions(catalog, "a", 2)
	assert.Len(t, got, 2)
}
