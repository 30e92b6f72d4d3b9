package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shahzada-shah/flow-studios/pkg/enums"
)

// PriceRange is inclusive on both ends. A nil Max leaves the range unbounded.
type PriceRange struct {
	Min decimal.Decimal  `json:"min"`
	Max *decimal.Decimal `json:"max,omitempty"`
}

func (r PriceRange) contains(price decimal.Decimal) bool {
	if price.LessThan(r.Min) {
		return false
	}
	return r.Max == nil || !price.GreaterThan(*r.Max)
}

// ProductFilters is the full set of catalog narrowing and ordering knobs.
// Empty selections never narrow the result.
type ProductFilters struct {
	Categories      []string      `json:"categories,omitempty"`
	Sizes           []string      `json:"sizes,omitempty"`
	Colors          []string      `json:"colors,omitempty"`
	Activities      []string      `json:"activities,omitempty"`
	Price           *PriceRange   `json:"price_range,omitempty"`
	SustainableOnly bool          `json:"sustainable,omitempty"`
	NewOnly         bool          `json:"new_arrivals,omitempty"`
	InStockOnly     bool          `json:"in_stock,omitempty"`
	Query           string        `json:"q,omitempty"`
	SortBy          enums.SortKey `json:"sort_by,omitempty"`
}

type predicate func(Product) bool

// Apply returns the products matching every active filter, ordered by
// f.SortBy. The input slice is never modified; ties keep their input order.
func Apply(products []Product, f ProductFilters) []Product {
	preds := f.predicates()
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if matchesAll(p, preds) {
			out = append(out, p)
		}
	}
	sortProducts(out, f.SortBy)
	return out
}

// ActiveFilterCount is the number of selected values across the multi-select
// filters plus one per enabled toggle.
func ActiveFilterCount(f ProductFilters) int {
	n := len(f.Categories) + len(f.Sizes) + len(f.Colors) + len(f.Activities)
	for _, on := range []bool{f.SustainableOnly, f.NewOnly, f.InStockOnly} {
		if on {
			n++
		}
	}
	return n
}

func (f ProductFilters) predicates() []predicate {
	var preds []predicate

	if set := stringSet(f.Categories); len(set) > 0 {
		preds = append(preds, func(p Product) bool { return anyIn(p.Categories, set) })
	}
	if set := sizeSet(f.Sizes); len(set) > 0 {
		preds = append(preds, func(p Product) bool { return anyIn(p.Sizes, set) })
	}
	if set := stringSet(f.Colors); len(set) > 0 {
		preds = append(preds, func(p Product) bool {
			_, ok := set[p.Color]
			return ok
		})
	}
	if set := stringSet(f.Activities); len(set) > 0 {
		preds = append(preds, func(p Product) bool { return anyIn(p.Activities, set) })
	}
	if f.Price != nil {
		r := *f.Price
		preds = append(preds, func(p Product) bool { return r.contains(p.Price) })
	}
	if f.SustainableOnly {
		preds = append(preds, func(p Product) bool { return p.Sustainable })
	}
	if f.NewOnly {
		preds = append(preds, func(p Product) bool { return p.New })
	}
	if f.InStockOnly {
		preds = append(preds, func(p Product) bool { return p.InStock })
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		preds = append(preds, func(p Product) bool { return matchesQuery(p, q) })
	}
	return preds
}

func matchesAll(p Product, preds []predicate) bool {
	for _, pred := range preds {
		if !pred(p) {
			return false
		}
	}
	return true
}

func matchesQuery(p Product, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Description), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Color), lowerQuery)
}

func sortProducts(products []Product, key enums.SortKey) {
	switch key {
	case enums.SortNewest:
		slices.SortStableFunc(products, func(a, b Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case enums.SortPriceLow:
		slices.SortStableFunc(products, func(a, b Product) int {
			return a.Price.Cmp(b.Price)
		})
	case enums.SortPriceHigh:
		slices.SortStableFunc(products, func(a, b Product) int {
			return b.Price.Cmp(a.Price)
		})
	default:
		// popular has no ranking signal; it and unknown keys keep catalog order
	}
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}

// sizeSet drops labels that are not known sizes.
func sizeSet(values []string) map[enums.Size]struct{} {
	set := make(map[enums.Size]struct{}, len(values))
	for _, v := range values {
		size, err := enums.ParseSize(v)
		if err != nil {
			continue
		}
		set[size] = struct{}{}
	}
	return set
}

func anyIn[T comparable](values []T, set map[T]struct{}) bool {
	for _, v := range values {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

// Facets summarises the values present in a product list so clients can
// build filter menus.
type Facets struct {
	Categories []string        `json:"categories"`
	Colors     []string        `json:"colors"`
	Sizes      []enums.Size    `json:"sizes"`
	Activities []string        `json:"activities"`
	MinPrice   decimal.Decimal `json:"min_price"`
	MaxPrice   decimal.Decimal `json:"max_price"`
	InStock    int             `json:"in_stock"`
	OutOfStock int             `json:"out_of_stock"`
	Total      int             `json:"total"`
}

// BuildFacets computes facets over products. Sizes follow display order,
// everything else is sorted alphabetically.
func BuildFacets(products []Product) Facets {
	categories := map[string]struct{}{}
	colors := map[string]struct{}{}
	sizes := map[enums.Size]struct{}{}
	activities := map[string]struct{}{}

	out := Facets{Total: len(products)}
	for i, p := range products {
		for _, c := range p.Categories {
			categories[c] = struct{}{}
		}
		if p.Color != "" {
			colors[p.Color] = struct{}{}
		}
		for _, s := range p.Sizes {
			sizes[s] = struct{}{}
		}
		for _, a := range p.Activities {
			activities[a] = struct{}{}
		}
		if i == 0 || p.Price.LessThan(out.MinPrice) {
			out.MinPrice = p.Price
		}
		if i == 0 || p.Price.GreaterThan(out.MaxPrice) {
			out.MaxPrice = p.Price
		}
		if p.InStock {
			out.InStock++
		} else {
			out.OutOfStock++
		}
	}

	out.Categories = sortedKeys(categories)
	out.Colors = sortedKeys(colors)
	out.Activities = sortedKeys(activities)
	out.Sizes = make([]enums.Size, 0, len(sizes))
	for _, s := range enums.Sizes() {
		if _, ok := sizes[s]; ok {
			out.Sizes = append(out.Sizes, s)
		}
	}
	return out
}

func sortedKeys[K cmp.Ordered](set map[K]struct{}) []K {
	keys := make([]K, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
