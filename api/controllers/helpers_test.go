package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shahzada-shah/flow-studios/api/middleware"
	"github.com/shahzada-shah/flow-studios/internal/cart"
	"github.com/shahzada-shah/flow-studios/internal/catalog"
	"github.com/shahzada-shah/flow-studios/internal/checkout"
	"github.com/shahzada-shah/flow-studios/internal/wishlist"
	"github.com/shahzada-shah/flow-studios/pkg/config"
	"github.com/shahzada-shah/flow-studios/pkg/logger"
	"github.com/shahzada-shah/flow-studios/pkg/redis/redistest"
)

type testServices struct {
	logg     *logger.Logger
	catalog  catalog.Service
	cart     cart.Service
	wishlist wishlist.Service
	checkout checkout.Service
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})

	store, err := catalog.Open(context.Background(), catalog.NewSeedLoader(""))
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	catalogSvc, err := catalog.NewService(store, config.CatalogConfig{HideOutOfStock: true, BestsellerDefault: 2}, nil)
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}

	state, _ := redistest.New(t)
	cartSvc, err := cart.NewService(state, store, time.Hour, logg, nil)
	if err != nil {
		t.Fatalf("cart service: %v", err)
	}
	wishlistSvc, err := wishlist.NewService(wishlist.ServiceParams{State: state, Resolver: store, TTL: time.Hour, Logger: logg})
	if err != nil {
		t.Fatalf("wishlist service: %v", err)
	}
	checkoutSvc, err := checkout.NewService(cartSvc, config.CheckoutConfig{ExpressShipping: "15.00"})
	if err != nil {
		t.Fatalf("checkout service: %v", err)
	}

	return testServices{logg: logg, catalog: catalogSvc, cart: cartSvc, wishlist: wishlistSvc, checkout: checkoutSvc}
}

// serve runs h with the given session and chi url params.
func serve(h http.Handler, method, target, sessionID, body string, params map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)

	routeCtx := chi.NewRouteContext()
	for k, v := range params {
		routeCtx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	if sessionID != "" {
		ctx = middleware.WithSessionID(ctx, sessionID)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decode data: %v (%s)", err, envelope.Data)
	}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error envelope: %v (%s)", err, rec.Body.String())
	}
	return body.Error.Code
}
