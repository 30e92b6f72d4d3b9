package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
)

type productJSON struct {
	ID    string `json:"id"`
	Price string `json:"price"`
	Color string `json:"color"`
}

func TestProductListFiltersAndSorts(t *testing.T) {
	svcs := newTestServices(t)
	h := ProductList(svcs.catalog, svcs.logg)

	rec := serve(h, http.MethodGet, "/api/v1/products?color=White,Navy&sort=price-low", "", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	var products []productJSON
	decodeData(t, rec, &products)
	if len(products) != 4 {
		t.Fatalf("expected 4 white or navy products, got %d", len(products))
	}
	for i, p := range products {
		if p.Color != "White" && p.Color != "Navy" {
			t.Fatalf("unexpected color %s", p.Color)
		}
		if i > 0 && decimal.RequireFromString(products[i-1].Price).GreaterThan(decimal.RequireFromString(p.Price)) {
			t.Fatalf("products not ascending by price: %v", products)
		}
	}

	var meta struct {
		Meta struct {
			Total         int `json:"total"`
			ActiveFilters int `json:"active_filters"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &meta); err != nil {
		t.Fatalf("decode meta: %v", err)
	}
	if meta.Meta.Total != 4 || meta.Meta.ActiveFilters != 2 {
		t.Fatalf("unexpected meta %+v", meta.Meta)
	}
}

func TestProductListHidesOutOfStockAndPaginates(t *testing.T) {
	svcs := newTestServices(t)
	h := ProductList(svcs.catalog, svcs.logg)

	rec := serve(h, http.MethodGet, "/api/v1/products?limit=5", "", "", nil)
	var body struct {
		Data []productJSON `json:"data"`
		Meta struct {
			Total      int    `json:"total"`
			NextCursor string `json:"next_cursor"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Meta.Total != 11 {
		t.Fatalf("expected the out-of-stock product hidden, total=%d", body.Meta.Total)
	}
	if len(body.Data) != 5 || body.Meta.NextCursor == "" {
		t.Fatalf("expected first page of 5 with a cursor, got %d %q", len(body.Data), body.Meta.NextCursor)
	}
	for _, p := range body.Data {
		if p.ID == "p-008" {
			t.Fatalf("out-of-stock product listed")
		}
	}
}

func TestProductListRejectsBadQuery(t *testing.T) {
	svcs := newTestServices(t)
	h := ProductList(svcs.catalog, svcs.logg)

	for _, target := range []string{
		"/api/v1/products?sort=cheapest",
		"/api/v1/products?min_price=abc",
		"/api/v1/products?min_price=100&max_price=50",
		"/api/v1/products?in_stock=perhaps",
		"/api/v1/products?limit=0",
		"/api/v1/products?cursor=%25%25",
	} {
		rec := serve(h, http.MethodGet, target, "", "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", target, rec.Code)
		}
		if code := errorCode(t, rec); code != string(pkgerrors.CodeValidation) {
			t.Fatalf("%s: unexpected code %s", target, code)
		}
	}
}

func TestProductDetailByIDOrSlug(t *testing.T) {
	svcs := newTestServices(t)
	h := ProductDetail(svcs.catalog, svcs.logg)

	for _, key := range []string{"p-001", "align-high-rise-legging"} {
		rec := serve(h, http.MethodGet, "/api/v1/products/"+key, "", "", map[string]string{"idOrSlug": key})
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", key, rec.Code)
		}
		var p productJSON
		decodeData(t, rec, &p)
		if p.ID != "p-001" {
			t.Fatalf("%s: unexpected product %s", key, p.ID)
		}
	}

	rec := serve(h, http.MethodGet, "/api/v1/products/nope", "", "", map[string]string{"idOrSlug": "nope"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestProductBestsellersAndFacets(t *testing.T) {
	svcs := newTestServices(t)

	rec := serve(ProductBestsellers(svcs.catalog, svcs.logg), http.MethodGet, "/api/v1/products/bestsellers", "", "", nil)
	var products []productJSON
	decodeData(t, rec, &products)
	if len(products) != 2 {
		t.Fatalf("expected configured default of 2, got %d", len(products))
	}

	rec = serve(ProductBestsellers(svcs.catalog, svcs.logg), http.MethodGet, "/api/v1/products/bestsellers?limit=10", "", "", nil)
	decodeData(t, rec, &products)
	if len(products) != 4 {
		t.Fatalf("expected all 4 bestsellers, got %d", len(products))
	}

	rec = serve(ProductFacets(svcs.catalog, svcs.logg), http.MethodGet, "/api/v1/products/facets", "", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var facets struct {
		Sizes []string `json:"sizes"`
		Total int      `json:"total"`
	}
	decodeData(t, rec, &facets)
	if facets.Total != 11 || len(facets.Sizes) == 0 || facets.Sizes[0] != "XS" {
		t.Fatalf("unexpected facets %+v", facets)
	}
}
