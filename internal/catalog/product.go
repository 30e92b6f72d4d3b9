package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shahzada-shah/flow-studios/pkg/enums"
)

// Product is an immutable catalog record. Values handed out by the Store are
// clones, so mutating a returned slice never reaches the catalog.
type Product struct {
	ID          string          `json:"id" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Slug        string          `json:"slug" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Categories  []string        `json:"categories"`
	Color       string          `json:"color" validate:"required"`
	ImageURL    *string         `json:"image_url"`
	Sizes       []enums.Size    `json:"sizes" validate:"dive,size"`
	Activities  []string        `json:"activities"`
	Sustainable bool            `json:"is_sustainable"`
	New         bool            `json:"is_new"`
	InStock     bool            `json:"in_stock"`
	Bestseller  bool            `json:"is_bestseller"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Clone returns a deep copy of the product.
func (p Product) Clone() Product {
	out := p
	out.Categories = cloneOrEmpty(p.Categories)
	out.Sizes = cloneOrEmpty(p.Sizes)
	out.Activities = cloneOrEmpty(p.Activities)
	if p.ImageURL != nil {
		url := *p.ImageURL
		out.ImageURL = &url
	}
	return out
}

func cloneOrEmpty[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
