package wishlist

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shahzada-shah/flow-studios/internal/catalog"
	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
	"github.com/shahzada-shah/flow-studios/pkg/keylock"
	"github.com/shahzada-shah/flow-studios/pkg/kv"
	"github.com/shahzada-shah/flow-studios/pkg/logger"
	"github.com/shahzada-shah/flow-studios/pkg/metrics"
)

const metricsStore = "wishlist"

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	State    kv.Store
	Resolver catalog.Resolver
	TTL      time.Duration
	Logger   *logger.Logger
	Metrics  *metrics.StorefrontMetrics
}

// Service exposes wishlist operations scoped to one shopper session.
type Service interface {
	Get(ctx context.Context, sessionID string) (*View, error)
	IDs(ctx context.Context, sessionID string) (*IDsView, error)
	Toggle(ctx context.Context, sessionID, productID string) (*ToggleResult, error)
	Remove(ctx context.Context, sessionID, productID string) (*View, error)
	Clear(ctx context.Context, sessionID string) (*View, error)
}

type View struct {
	Products []catalog.Product `json:"products"`
	Count    int               `json:"count"`
}

type IDsView struct {
	ProductIDs []string `json:"product_ids"`
	Count      int      `json:"count"`
}

// ToggleResult reports membership after the toggle.
type ToggleResult struct {
	ProductID  string `json:"product_id"`
	InWishlist bool   `json:"in_wishlist"`
	Count      int    `json:"count"`
}

type service struct {
	state    kv.Store
	resolver catalog.Resolver
	ttl      time.Duration
	locks    *keylock.Locker
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.State == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "wishlist state store is required")
	}
	if params.Resolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product resolver is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger is required")
	}
	return &service{
		state:    params.State,
		resolver: params.Resolver,
		ttl:      params.TTL,
		locks:    keylock.New(),
		logg:     params.Logger,
		metrics:  params.Metrics,
	}, nil
}

func newView(s *Store) *View {
	return &View{Products: s.Products(), Count: s.Len()}
}

func (s *service) Get(ctx context.Context, sessionID string) (*View, error) {
	var view *View
	err := s.withWishlist(ctx, sessionID, "", func(w *Store) bool {
		view = newView(w)
		return false
	})
	return view, err
}

func (s *service) IDs(ctx context.Context, sessionID string) (*IDsView, error) {
	var view *IDsView
	err := s.withWishlist(ctx, sessionID, "", func(w *Store) bool {
		view = &IDsView{ProductIDs: w.IDs(), Count: w.Len()}
		return false
	})
	return view, err
}

// Toggle flips membership of productID. Adding requires the product to
// resolve; a delisted product has already been pruned on load.
func (s *service) Toggle(ctx context.Context, sessionID, productID string) (*ToggleResult, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}

	var result *ToggleResult
	var toggleErr error
	err := s.withWishlist(ctx, sessionID, "toggle", func(w *Store) bool {
		if w.Contains(productID) {
			w.Remove(productID)
			result = &ToggleResult{ProductID: productID, InWishlist: false, Count: w.Len()}
			return true
		}
		product, err := s.resolver.Resolve(ctx, productID)
		if err != nil {
			toggleErr = err
			return false
		}
		in := w.Toggle(product)
		result = &ToggleResult{ProductID: productID, InWishlist: in, Count: w.Len()}
		return true
	})
	if err != nil {
		return nil, err
	}
	if toggleErr != nil {
		if pkgerrors.As(toggleErr) != nil {
			return nil, toggleErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, toggleErr, "resolve product")
	}
	return result, nil
}

func (s *service) Remove(ctx context.Context, sessionID, productID string) (*View, error) {
	var view *View
	err := s.withWishlist(ctx, sessionID, "remove", func(w *Store) bool {
		w.Remove(productID)
		view = newView(w)
		return true
	})
	return view, err
}

func (s *service) Clear(ctx context.Context, sessionID string) (*View, error) {
	var view *View
	err := s.withWishlist(ctx, sessionID, "clear", func(w *Store) bool {
		w.Clear()
		view = newView(w)
		return true
	})
	return view, err
}

func (s *service) withWishlist(ctx context.Context, sessionID, op string, fn func(*Store) bool) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "session is required")
	}
	ctx = s.logg.WithSessionID(ctx, sessionID)

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	started := time.Now()
	defer func() { s.metrics.ObserveStateDuration(metricsStore, time.Since(started)) }()

	w, pruned, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	changed := fn(w)
	if !changed && !pruned {
		return nil
	}
	if err := s.save(ctx, sessionID, w); err != nil {
		return err
	}
	if changed {
		s.metrics.IncMutation(metricsStore, op)
	}
	return nil
}

// load reads the session wishlist. The bool reports that the stored state
// was pruned and should be written back.
func (s *service) load(ctx context.Context, sessionID string) (*Store, bool, error) {
	raw, err := s.state.Get(ctx, kv.WishlistKey(sessionID))
	if errors.Is(err, kv.ErrNotFound) {
		return NewStore(), false, nil
	}
	if err != nil {
		s.metrics.IncStateError(metricsStore, "load")
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}
	w, dropped, err := decodeState(ctx, raw, s.resolver)
	if err != nil {
		if pkgerrors.As(err) != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, false, err
		}
		s.metrics.IncStateError(metricsStore, "decode")
		s.logg.Error(ctx, "discarding unreadable wishlist state", err)
		return NewStore(), true, nil
	}
	if len(dropped) > 0 {
		s.logg.Warn(s.logg.WithField(ctx, "dropped_products", dropped), "wishlist entries dropped: products no longer in catalog")
		return w, true, nil
	}
	return w, false, nil
}

func (s *service) save(ctx context.Context, sessionID string, w *Store) error {
	key := kv.WishlistKey(sessionID)
	if w.Len() == 0 {
		if err := s.state.Del(ctx, key); err != nil {
			s.metrics.IncStateError(metricsStore, "save")
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear wishlist")
		}
		return nil
	}
	raw, err := encodeState(w)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode wishlist")
	}
	if err := s.state.Set(ctx, key, raw, s.ttl); err != nil {
		s.metrics.IncStateError(metricsStore, "save")
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save wishlist")
	}
	return nil
}
