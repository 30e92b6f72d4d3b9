package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shahzada-shah/flow-studios/api/responses"
	"github.com/shahzada-shah/flow-studios/api/validators"
	"github.com/shahzada-shah/flow-studios/internal/catalog"
	"github.com/shahzada-shah/flow-studios/pkg/enums"
	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
	"github.com/shahzada-shah/flow-studios/pkg/logger"
	"github.com/shahzada-shah/flow-studios/pkg/pagination"
)

const maxQueryLen = 120

type productListMeta struct {
	pagination.Page
	ActiveFilters int `json:"active_filters"`
}

// ProductList serves the filtered, sorted and paginated catalog.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		input, err := parseListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessMeta(w, result.Products, productListMeta{Page: result.Page, ActiveFilters: result.ActiveFilters})
	}
}

func parseListInput(r *http.Request) (catalog.ListInput, error) {
	filters := catalog.ProductFilters{
		Categories: validators.ParseQueryList(r, "category"),
		Sizes:      validators.ParseQueryList(r, "size"),
		Colors:     validators.ParseQueryList(r, "color"),
		Activities: validators.ParseQueryList(r, "activity"),
		Query:      validators.SanitizeString(r.URL.Query().Get("q"), maxQueryLen),
	}

	var err error
	if filters.SustainableOnly, err = validators.ParseQueryBool(r, "sustainable"); err != nil {
		return catalog.ListInput{}, err
	}
	if filters.NewOnly, err = validators.ParseQueryBool(r, "new"); err != nil {
		return catalog.ListInput{}, err
	}
	if filters.InStockOnly, err = validators.ParseQueryBool(r, "in_stock"); err != nil {
		return catalog.ListInput{}, err
	}

	if filters.Price, err = parsePriceRange(r); err != nil {
		return catalog.ListInput{}, err
	}

	sortKey, err := enums.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		return catalog.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort").WithDetails(map[string]any{"field": "sort"})
	}
	filters.SortBy = sortKey

	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return catalog.ListInput{}, err
	}

	return catalog.ListInput{
		Filters: filters,
		Pagination: pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		},
	}, nil
}

func parsePriceRange(r *http.Request) (*catalog.PriceRange, error) {
	lower, err := validators.ParseQueryDecimal(r, "min_price")
	if err != nil {
		return nil, err
	}
	upper, err := validators.ParseQueryDecimal(r, "max_price")
	if err != nil {
		return nil, err
	}
	if lower == nil && upper == nil {
		return nil, nil
	}

	rng := &catalog.PriceRange{Min: decimal.Zero, Max: upper}
	if lower != nil {
		rng.Min = *lower
	}
	if upper != nil && upper.LessThan(rng.Min) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "max_price must not be below min_price").WithDetails(map[string]any{"field": "max_price"})
	}
	return rng, nil
}

// ProductFacets reports the filter menu values for the visible catalog.
func ProductFacets(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		facets, err := svc.Facets(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, facets)
	}
}

func ProductBestsellers(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		// zero lets the service apply its configured default
		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		products, err := svc.Bestsellers(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// ProductDetail looks a product up by id or slug.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		key, err := pathParam(r, "idOrSlug")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Get(r.Context(), key)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
