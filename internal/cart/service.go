package cart

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shahzada-shah/flow-studios/internal/catalog"
	"github.com/shahzada-shah/flow-studios/pkg/enums"
	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
	"github.com/shahzada-shah/flow-studios/pkg/keylock"
	"github.com/shahzada-shah/flow-studios/pkg/kv"
	"github.com/shahzada-shah/flow-studios/pkg/logger"
	"github.com/shahzada-shah/flow-studios/pkg/metrics"
)

const metricsStore = "cart"

// Service applies cart operations to the cart of one shopper session.
type Service interface {
	Get(ctx context.Context, sessionID string) (*View, error)
	Add(ctx context.Context, sessionID string, input AddInput) (*AddResult, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, size enums.Size, quantity int) (*View, error)
	Remove(ctx context.Context, sessionID, productID string, size enums.Size) (*View, error)
	Clear(ctx context.Context, sessionID string) (*View, error)
}

// AddInput is a validated add-to-cart request.
type AddInput struct {
	ProductID string
	Size      enums.Size
	Quantity  int
}

// LineView is the API shape of a cart line.
type LineView struct {
	Product   catalog.Product `json:"product"`
	Size      enums.Size      `json:"size"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// View is a snapshot of a cart with its derived totals.
type View struct {
	Lines []LineView      `json:"lines"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// AddResult reports whether the product resolved and was added.
type AddResult struct {
	View
	Added bool `json:"added"`
}

// NewView derives the API snapshot of s.
func NewView(s *Store) *View {
	lines := s.Lines()
	view := &View{Lines: make([]LineView, 0, len(lines)), Total: s.Total(), Count: s.Count()}
	for _, line := range lines {
		view.Lines = append(view.Lines, LineView{
			Product:   line.Product,
			Size:      line.Size,
			Quantity:  line.Quantity,
			LineTotal: line.Subtotal(),
		})
	}
	return view
}

type service struct {
	state    kv.Store
	resolver catalog.Resolver
	ttl      time.Duration
	locks    *keylock.Locker
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
}

// NewService wires the cart service. ttl bounds how long an idle cart is kept.
func NewService(state kv.Store, resolver catalog.Resolver, ttl time.Duration, logg *logger.Logger, m *metrics.StorefrontMetrics) (Service, error) {
	if state == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart state store is required")
	}
	if resolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product resolver is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger is required")
	}
	return &service{
		state:    state,
		resolver: resolver,
		ttl:      ttl,
		locks:    keylock.New(),
		logg:     logg,
		metrics:  m,
	}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*View, error) {
	var view *View
	err := s.withCart(ctx, sessionID, "", func(c *Store) (bool, error) {
		view = NewView(c)
		return false, nil
	})
	return view, err
}

func (s *service) Add(ctx context.Context, sessionID string, input AddInput) (*AddResult, error) {
	if strings.TrimSpace(input.ProductID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}
	if !input.Size.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid size %q", input.Size)
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	result := &AddResult{}
	err := s.withCart(ctx, sessionID, "add", func(c *Store) (bool, error) {
		added, err := c.AddByID(ctx, s.resolver, input.ProductID, input.Size, input.Quantity)
		if err != nil {
			// an unresolved product is not a request failure; the cart stays as it was
			s.logg.Warn(s.logg.WithProductID(ctx, input.ProductID), "cart add skipped: product not resolved")
		}
		result.Added = added
		result.View = *NewView(c)
		return added, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID, productID string, size enums.Size, quantity int) (*View, error) {
	var view *View
	err := s.withCart(ctx, sessionID, "update_quantity", func(c *Store) (bool, error) {
		c.UpdateQuantity(productID, size, quantity)
		view = NewView(c)
		return true, nil
	})
	return view, err
}

func (s *service) Remove(ctx context.Context, sessionID, productID string, size enums.Size) (*View, error) {
	var view *View
	err := s.withCart(ctx, sessionID, "remove", func(c *Store) (bool, error) {
		c.RemoveFromCart(productID, size)
		view = NewView(c)
		return true, nil
	})
	return view, err
}

func (s *service) Clear(ctx context.Context, sessionID string) (*View, error) {
	var view *View
	err := s.withCart(ctx, sessionID, "clear", func(c *Store) (bool, error) {
		c.ClearCart()
		view = NewView(c)
		return true, nil
	})
	return view, err
}

// withCart runs fn against the session cart under the session lock. When fn
// reports a change the cart is written back before the lock is released.
func (s *service) withCart(ctx context.Context, sessionID, op string, fn func(*Store) (bool, error)) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "session is required")
	}
	ctx = s.logg.WithSessionID(ctx, sessionID)

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	started := time.Now()
	defer func() { s.metrics.ObserveStateDuration(metricsStore, time.Since(started)) }()

	c, pruned, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	changed, err := fn(c)
	if err != nil {
		return err
	}
	if !changed && !pruned {
		return nil
	}
	if err := s.save(ctx, sessionID, c); err != nil {
		return err
	}
	if changed {
		s.metrics.IncMutation(metricsStore, op)
	}
	return nil
}

// load reads the session cart. The bool reports that the stored state was
// pruned and should be written back.
func (s *service) load(ctx context.Context, sessionID string) (*Store, bool, error) {
	raw, err := s.state.Get(ctx, kv.CartKey(sessionID))
	if errors.Is(err, kv.ErrNotFound) {
		return NewStore(), false, nil
	}
	if err != nil {
		s.metrics.IncStateError(metricsStore, "load")
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	c, dropped, err := decodeState(ctx, raw, s.resolver)
	if err != nil {
		var typed *pkgerrors.Error
		if errors.As(err, &typed) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, false, err
		}
		// unreadable state is discarded rather than locking the shopper out
		s.metrics.IncStateError(metricsStore, "decode")
		s.logg.Error(ctx, "discarding unreadable cart state", err)
		return NewStore(), true, nil
	}
	if len(dropped) > 0 {
		s.logg.Warn(s.logg.WithField(ctx, "dropped_products", dropped), "cart lines dropped: products no longer in catalog")
		return c, true, nil
	}
	return c, false, nil
}

func (s *service) save(ctx context.Context, sessionID string, c *Store) error {
	key := kv.CartKey(sessionID)
	if c.IsEmpty() {
		if err := s.state.Del(ctx, key); err != nil {
			s.metrics.IncStateError(metricsStore, "save")
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}
		return nil
	}
	raw, err := encodeState(c)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.state.Set(ctx, key, raw, s.ttl); err != nil {
		s.metrics.IncStateError(metricsStore, "save")
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}
