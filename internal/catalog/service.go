package catalog

import (
	"context"
	"strings"

	"github.com/shahzada-shah/flow-studios/pkg/config"
	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
	"github.com/shahzada-shah/flow-studios/pkg/metrics"
	"github.com/shahzada-shah/flow-studios/pkg/pagination"
)

// Service exposes the storefront catalog read paths.
type Service interface {
	List(ctx context.Context, input ListInput) (*ListResult, error)
	Get(ctx context.Context, idOrSlug string) (Product, error)
	Facets(ctx context.Context) (Facets, error)
	Bestsellers(ctx context.Context, limit int) ([]Product, error)
}

// ListInput captures the filters and window for a catalog listing.
type ListInput struct {
	Filters    ProductFilters
	Pagination pagination.Params
}

// ListResult is one page of filtered products.
type ListResult struct {
	Products      []Product       `json:"products"`
	Page          pagination.Page `json:"page"`
	ActiveFilters int             `json:"active_filters"`
}

type service struct {
	store             *Store
	hideOutOfStock    bool
	bestsellerDefault int
	metrics           *metrics.StorefrontMetrics
}

// NewService builds the catalog service over an already loaded store.
func NewService(store *Store, cfg config.CatalogConfig, m *metrics.StorefrontMetrics) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog store is required")
	}
	limit := cfg.BestsellerDefault
	if limit <= 0 {
		limit = 4
	}
	return &service{
		store:             store,
		hideOutOfStock:    cfg.HideOutOfStock,
		bestsellerDefault: limit,
		metrics:           m,
	}, nil
}

// visible is the listing base: the whole catalog, minus out-of-stock products
// when the storefront hides them.
func (s *service) visible() []Product {
	all := s.store.All()
	if !s.hideOutOfStock {
		return all
	}
	return Apply(all, ProductFilters{InStockOnly: true})
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filtered := Apply(s.visible(), input.Filters)
	s.metrics.ObserveFilterResults(len(filtered))

	window, page, err := pagination.Window(filtered, input.Pagination)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	return &ListResult{
		Products:      window,
		Page:          page,
		ActiveFilters: ActiveFilterCount(input.Filters),
	}, nil
}

// Get finds a product by id, falling back to slug. Out-of-stock products stay
// reachable directly even when hidden from listings.
func (s *service) Get(ctx context.Context, idOrSlug string) (Product, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, err
	}
	key := strings.TrimSpace(idOrSlug)
	if key == "" {
		return Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product id or slug is required")
	}
	if p, ok := s.store.FindByID(key); ok {
		return p, nil
	}
	if p, ok := s.store.FindBySlug(key); ok {
		return p, nil
	}
	return Product{}, pkgerrors.Newf(pkgerrors.CodeNotFound, "product %q not found", key)
}

func (s *service) Facets(ctx context.Context) (Facets, error) {
	if err := ctx.Err(); err != nil {
		return Facets{}, err
	}
	return BuildFacets(s.visible()), nil
}

// Bestsellers returns up to limit flagged products in catalog order.
func (s *service) Bestsellers(ctx context.Context, limit int) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.bestsellerDefault
	}
	limit = min(limit, pagination.MaxLimit)

	out := make([]Product, 0, limit)
	for _, p := range s.visible() {
		if !p.Bestseller {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
