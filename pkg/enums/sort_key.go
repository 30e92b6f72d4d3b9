package enums

import (
	"fmt"
	"strings"
)

// SortKey selects the catalog ordering.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortPopular   SortKey = "popular"
)

// DefaultSort is applied when a request names no ordering.
const DefaultSort = SortNewest

var validSortKeys = []SortKey{
	SortNewest,
	SortPriceLow,
	SortPriceHigh,
	SortPopular,
}

// String implements fmt.Stringer.
func (k SortKey) String() string {
	return string(k)
}

// IsValid reports whether the value is a known SortKey.
func (k SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey. Blank input yields DefaultSort.
func ParseSortKey(value string) (SortKey, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return DefaultSort, nil
	}
	for _, candidate := range validSortKeys {
		if string(candidate) == trimmed {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}
