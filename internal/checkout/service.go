package checkout

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shahzada-shah/flow-studios/internal/cart"
	"github.com/shahzada-shah/flow-studios/pkg/config"
	"github.com/shahzada-shah/flow-studios/pkg/enums"
	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
)

// Service prices the session cart for checkout. It never places orders.
type Service interface {
	Quote(ctx context.Context, sessionID string, details Details) (*Quote, error)
}

// Quote is the order summary shown before payment.
type Quote struct {
	Lines          []cart.LineView      `json:"lines"`
	ItemCount      int                  `json:"item_count"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	Shipping       decimal.Decimal      `json:"shipping"`
	Total          decimal.Decimal      `json:"total"`
	ShippingMethod enums.ShippingMethod `json:"shipping_method"`
	Details        Details              `json:"details"`
}

type cartReader interface {
	Get(ctx context.Context, sessionID string) (*cart.View, error)
}

type service struct {
	carts   cartReader
	express decimal.Decimal
}

func NewService(carts cartReader, cfg config.CheckoutConfig) (Service, error) {
	if carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart service is required")
	}
	express, err := cfg.ExpressShippingCost()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "express shipping cost")
	}
	return &service{carts: carts, express: express}, nil
}

func (s *service) Quote(ctx context.Context, sessionID string, details Details) (*Quote, error) {
	details = details.Normalize()
	if err := details.Validate(); err != nil {
		return nil, err
	}

	view, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(view.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	shipping := s.shippingCost(details.ShippingMethod)
	return &Quote{
		Lines:          view.Lines,
		ItemCount:      view.Count,
		Subtotal:       view.Total,
		Shipping:       shipping,
		Total:          view.Total.Add(shipping),
		ShippingMethod: details.ShippingMethod,
		Details:        details,
	}, nil
}

func (s *service) shippingCost(method enums.ShippingMethod) decimal.Decimal {
	if method == enums.ShippingExpress {
		return s.express
	}
	return decimal.Zero
}
