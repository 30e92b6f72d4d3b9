package wishlist

import "github.com/shahzada-shah/flow-studios/internal/catalog"

// Store is a single shopper's wishlist: a membership set plus the saved
// product snapshots in the order they were added. The set and the list are
// only changed together. Not safe for concurrent use.
type Store struct {
	ids      map[string]struct{}
	products []catalog.Product
}

func NewStore() *Store {
	return &Store{ids: make(map[string]struct{})}
}

// Toggle adds product when absent and removes it when present, returning the
// membership after the change.
func (s *Store) Toggle(product catalog.Product) bool {
	if s.Contains(product.ID) {
		s.Remove(product.ID)
		return false
	}
	s.ids[product.ID] = struct{}{}
	s.products = append(s.products, product.Clone())
	return true
}

// Remove drops productID; absent ids are ignored.
func (s *Store) Remove(productID string) {
	if _, ok := s.ids[productID]; !ok {
		return
	}
	delete(s.ids, productID)
	for i, p := range s.products {
		if p.ID == productID {
			s.products = append(s.products[:i], s.products[i+1:]...)
			break
		}
	}
}

func (s *Store) Clear() {
	s.ids = make(map[string]struct{})
	s.products = nil
}

func (s *Store) Contains(productID string) bool {
	_, ok := s.ids[productID]
	return ok
}

// Products returns copies of the snapshots in insertion order.
func (s *Store) Products() []catalog.Product {
	out := make([]catalog.Product, len(s.products))
	for i, p := range s.products {
		out[i] = p.Clone()
	}
	return out
}

// IDs returns member ids in insertion order.
func (s *Store) IDs() []string {
	out := make([]string, len(s.products))
	for i, p := range s.products {
		out[i] = p.ID
	}
	return out
}

func (s *Store) Len() int {
	return len(s.products)
}
