package wishlist

import (
	"context"
	"encoding/json"

	"github.com/shahzada-shah/flow-studios/internal/catalog"
	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
)

type persistedWishlist struct {
	Products []catalog.Product `json:"products"`
}

func encodeState(s *Store) (string, error) {
	b, err := json.Marshal(persistedWishlist{Products: s.products})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeState rebuilds the membership set from the snapshot list. A repeated
// id keeps its first position. Each snapshot is refreshed from the catalog;
// ids the catalog no longer knows are dropped and reported.
func decodeState(ctx context.Context, raw string, resolver catalog.Resolver) (*Store, []string, error) {
	var doc persistedWishlist
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, nil, err
	}
	s := NewStore()
	var dropped []string
	for _, snapshot := range doc.Products {
		if snapshot.ID == "" || s.Contains(snapshot.ID) {
			continue
		}
		p, err := resolver.Resolve(ctx, snapshot.ID)
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			dropped = append(dropped, snapshot.ID)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		s.ids[p.ID] = struct{}{}
		s.products = append(s.products, p)
	}
	return s, dropped, nil
}
