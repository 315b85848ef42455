package engine

import (
	"sort"
	"strings"

	"github.com/rhushabh77/crowdfunding-backend/models"
)

// Sort keys accepted by the catalog.
const (
	SortEverything = "everything"
	SortRemaining  = "remaining"
	SortFunded     = "funded"
)

// SortFilter filters the catalog by a case-insensitive substring match on
// name or description and orders the survivors by the requested key.
// "everything" preserves the input order; "remaining" ranks by the converted
// amount still needed, descending; "funded" ranks by the display-currency
// funded ratio, descending. The sort is stable so equal keys keep their
// relative input order.
func SortFilter(products []models.Product, searchTerm, sortKey, currency string, rate models.ExchangeRate) []models.Product {
	needle := strings.ToLower(searchTerm)

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if needle == "" ||
			strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			filtered = append(filtered, p)
		}
	}

	switch sortKey {
	case SortRemaining:
		sort.SliceStable(filtered, func(i, j int) bool {
			return Remaining(filtered[i], currency, rate) > Remaining(filtered[j], currency, rate)
		})
	case SortFunded:
		sort.SliceStable(filtered, func(i, j int) bool {
			return displayFundedRatio(filtered[i], currency, rate) > displayFundedRatio(filtered[j], currency, rate)
		})
	}

	return filtered
}
