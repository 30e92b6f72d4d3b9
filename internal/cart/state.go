package cart

import (
	"context"
	"encoding/json"

	"github.com/shahzada-shah/flow-studios/internal/catalog"
	"github.com/shahzada-shah/flow-studios/pkg/enums"
	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
)

// persisted lines keep only references; products are re-resolved on load so
// price and stock follow the catalog.
type persistedLine struct {
	ProductID string     `json:"product_id"`
	Size      enums.Size `json:"size"`
	Quantity  int        `json:"quantity"`
}

type persistedCart struct {
	Lines []persistedLine `json:"lines"`
}

func encodeState(s *Store) (string, error) {
	doc := persistedCart{Lines: make([]persistedLine, 0, len(s.lines))}
	for _, line := range s.lines {
		doc.Lines = append(doc.Lines, persistedLine{
			ProductID: line.Product.ID,
			Size:      line.Size,
			Quantity:  line.Quantity,
		})
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeState rebuilds a cart. Lines whose product no longer resolves are
// dropped and reported in the second return value.
func decodeState(ctx context.Context, raw string, resolver catalog.Resolver) (*Store, []string, error) {
	var doc persistedCart
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, nil, err
	}
	store := NewStore()
	var dropped []string
	for _, line := range doc.Lines {
		ok, err := store.AddByID(ctx, resolver, line.ProductID, line.Size, line.Quantity)
		if err != nil && !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return nil, nil, err
		}
		if !ok {
			dropped = append(dropped, line.ProductID)
		}
	}
	return store, dropped, nil
}
