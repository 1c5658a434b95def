package metrics

import (
	"strings"

	"github.com/profitlens/backend-go/internal/domain"
)

// Filter narrows a calculated product view by search term and category,
// preserving input order. The term is tokenized on whitespace; a record
// matches only if every token is a subsequence match against its searchable
// text (tokens are ANDed). A nil category passes all records; a non-nil one
// requires an exact category match.
func Filter(products []domain.CalculatedProduct, search string, category *string) []domain.CalculatedProduct {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(search)))

	matched := make([]domain.CalculatedProduct, 0, len(products))
	for _, p := range products {
		if category != nil && p.Category != *category {
			continue
		}
		if matchesTokens(p.Product, tokens) {
			matched = append(matched, p)
		}
	}
	return matched
}

func matchesTokens(p domain.Product, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	haystack := searchableText(p)
	for _, token := range tokens {
		if !FuzzyMatch(token, haystack) {
			return false
		}
	}
	return true
}

// searchableText is the lower-cased name, category and supplier joined by
// single spaces, skipping absent fields.
func searchableText(p domain.Product) string {
	parts := make([]string, 0, 3)
	parts = append(parts, p.Name)
	if p.Category != "" {
		parts = append(parts, p.Category)
	}
	if p.Supplier != "" {
		parts = append(parts, p.Supplier)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// FuzzyMatch reports whether needle is a subsequence of haystack: its
// characters must appear in order, with gaps allowed. This is not an
// edit-distance match: "ogc" matches "organic", "gco" does not. An empty
// needle matches anything; equal lengths require exact equality.
func FuzzyMatch(needle, haystack string) bool {
	if needle == "" {
		return true
	}
	if haystack == "" {
		return false
	}

	// Compare runes, not bytes, so multi-byte names cannot match across
	// split UTF-8 sequences.
	nr := []rune(needle)
	hr := []rune(haystack)
	if len(nr) > len(hr) {
		return false
	}
	if len(nr) == len(hr) {
		return needle == haystack
	}

	ni := 0
	for hi := 0; hi < len(hr) && ni < len(nr); hi++ {
		if nr[ni] == hr[hi] {
			ni++
		}
	}
	return ni == len(nr)
}

// Suggestions returns up to limit product names containing the term
// case-insensitively, excluding an exact match so the box never suggests
// what was already typed.
func Suggestions(products []domain.CalculatedProduct, term string, limit int) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || limit <= 0 {
		return nil
	}

	names := make([]string, 0, limit)
	for _, p := range products {
		lower := strings.ToLower(p.Name)
		if strings.Contains(lower, term) && lower != term {
			names = append(names, p.Name)
			if len(names) == limit {
				break
			}
		}
	}
	return names
}
