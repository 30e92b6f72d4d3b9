package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shahzada-shah/flow-studios/internal/catalog"
	"github.com/shahzada-shah/flow-studios/pkg/enums"
)

// Line is one (product, size) entry in a cart. Quantity is always >= 1 while
// the line exists.
type Line struct {
	Product  catalog.Product
	Size     enums.Size
	Quantity int
}

// Subtotal is the line price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Store holds the lines of a single cart. It is not safe for concurrent use;
// callers serialise access per cart. Every operation is total: invalid input
// leaves the cart unchanged instead of failing.
type Store struct {
	lines []Line
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) find(productID string, size enums.Size) int {
	for i, line := range s.lines {
		if line.Product.ID == productID && line.Size == size {
			return i
		}
	}
	return -1
}

// AddToCart adds quantity units of product in size, merging into an existing
// line for the same pair. Non-positive quantities are ignored.
func (s *Store) AddToCart(product catalog.Product, size enums.Size, quantity int) {
	if quantity <= 0 {
		return
	}
	if i := s.find(product.ID, size); i >= 0 {
		s.lines[i].Quantity += quantity
		return
	}
	s.lines = append(s.lines, Line{Product: product.Clone(), Size: size, Quantity: quantity})
}

// AddByID resolves productID and adds it. When resolution fails the cart is
// left as it was and false is returned along with the lookup error.
func (s *Store) AddByID(ctx context.Context, resolver catalog.Resolver, productID string, size enums.Size, quantity int) (bool, error) {
	product, err := resolver.Resolve(ctx, productID)
	if err != nil {
		return false, err
	}
	if quantity <= 0 {
		return false, nil
	}
	s.AddToCart(product, size, quantity)
	return true, nil
}

// RemoveFromCart drops the line for the pair, if any.
func (s *Store) RemoveFromCart(productID string, size enums.Size) {
	i := s.find(productID, size)
	if i < 0 {
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
}

// UpdateQuantity sets the quantity of an existing line; zero or less removes it.
func (s *Store) UpdateQuantity(productID string, size enums.Size, quantity int) {
	i := s.find(productID, size)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		s.RemoveFromCart(productID, size)
		return
	}
	s.lines[i].Quantity = quantity
}

func (s *Store) ClearCart() {
	s.lines = nil
}

// Lines returns a copy of the lines in insertion order.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	for i, line := range s.lines {
		line.Product = line.Product.Clone()
		out[i] = line
	}
	return out
}

// Total is the sum of line subtotals.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Count is the number of units across all lines.
func (s *Store) Count() int {
	n := 0
	for _, line := range s.lines {
		n += line.Quantity
	}
	return n
}

func (s *Store) IsEmpty() bool {
	return len(s.lines) == 0
}
