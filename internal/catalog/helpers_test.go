package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shahzada-shah/flow-studios/pkg/enums"
)

var baseTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type productOpt func(*Product)

func newTestProduct(id string, price string, opts ...productOpt) Product {
	p := Product{
		ID:         id,
		Name:       "Product " + id,
		Slug:       "product-" + id,
		Price:      decimal.RequireFromString(price),
		Categories: []string{},
		Color:      "Black",
		Sizes:      []enums.Size{enums.SizeM},
		Activities: []string{},
		InStock:    true,
		CreatedAt:  baseTime,
		UpdatedAt:  baseTime,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func withColor(c string) productOpt { return func(p *Product) { p.Color = c } }

func withSizes(sizes ...enums.Size) productOpt { return func(p *Product) { p.Sizes = sizes } }

func withActivities(a ...string) productOpt { return func(p *Product) { p.Activities = a } }

func withCategories(c ...string) productOpt { return func(p *Product) { p.Categories = c } }

func withCreated(daysAfterBase int) productOpt {
	return func(p *Product) { p.CreatedAt = baseTime.AddDate(0, 0, daysAfterBase) }
}

func sustainable() productOpt { return func(p *Product) { p.Sustainable = true } }

func newArrival() productOpt { return func(p *Product) { p.New = true } }

func outOfStock() productOpt { return func(p *Product) { p.InStock = false } }

func bestseller() productOpt { return func(p *Product) { p.Bestseller = true } }

func ids(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func mustStore(t *testing.T, products ...Product) *Store {
	t.Helper()
	store, err := NewStore(products)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}
