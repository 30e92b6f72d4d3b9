package catalog

import (
	"context"
	"strings"

	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
)

// Resolver looks a product up by id. The cart and wishlist depend on this
// rather than on the Store itself.
type Resolver interface {
	Resolve(ctx context.Context, id string) (Product, error)
}

// Store is the read-only product catalog. It is built once and never
// mutated, so concurrent readers need no locking.
type Store struct {
	products []Product
	byID     map[string]int
	bySlug   map[string]int
}

var _ Resolver = (*Store)(nil)

// NewStore indexes products, rejecting duplicate ids or slugs.
func NewStore(products []Product) (*Store, error) {
	s := &Store{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
		bySlug:   make(map[string]int, len(products)),
	}
	for _, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
		}
		if _, dup := s.byID[p.ID]; dup {
			return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "duplicate product id %q", p.ID)
		}
		if _, dup := s.bySlug[p.Slug]; dup && p.Slug != "" {
			return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "duplicate product slug %q", p.Slug)
		}
		idx := len(s.products)
		s.products = append(s.products, p.Clone())
		s.byID[p.ID] = idx
		if p.Slug != "" {
			s.bySlug[p.Slug] = idx
		}
	}
	return s, nil
}

// All returns every product in catalog order.
func (s *Store) All() []Product {
	out := make([]Product, len(s.products))
	for i, p := range s.products {
		out[i] = p.Clone()
	}
	return out
}

func (s *Store) Len() int {
	return len(s.products)
}

func (s *Store) FindByID(id string) (Product, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return Product{}, false
	}
	return s.products[idx].Clone(), true
}

func (s *Store) FindBySlug(slug string) (Product, bool) {
	idx, ok := s.bySlug[slug]
	if !ok {
		return Product{}, false
	}
	return s.products[idx].Clone(), true
}

// Resolve implements Resolver.
func (s *Store) Resolve(ctx context.Context, id string) (Product, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, err
	}
	p, ok := s.FindByID(id)
	if !ok {
		return Product{}, pkgerrors.Newf(pkgerrors.CodeNotFound, "product %q not found", id)
	}
	return p, nil
}
