package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahzada-shah/flow-studios/pkg/enums"
)

func filterFixture() []Product {
	return []Product{
		newTestProduct("a", "50.00", withSizes(enums.SizeS, enums.SizeM), withColor("Black"), withActivities("Yoga"), withCreated(1), sustainable()),
		newTestProduct("b", "30.00", withSizes(enums.SizeL), withColor("Navy"), withActivities("Running", "Training"), withCreated(3), newArrival()),
		newTestProduct("c", "80.00", withSizes(enums.SizeM, enums.SizeXL), withColor("Black"), withActivities("Running"), withCreated(2), sustainable(), newArrival()),
		newTestProduct("d", "30.00", withSizes(enums.SizeXS), withColor("White"), withCategories("accessories"), withCreated(0), outOfStock()),
	}
}

func TestApplyNoFiltersKeepsEverything(t *testing.T) {
	products := filterFixture()
	got := Apply(products, ProductFilters{})
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(got), "empty sort key keeps input order")
}

func TestApplySizeFilterMatchesIntersection(t *testing.T) {
	got := Apply(filterFixture(), ProductFilters{Sizes: []string{"M"}, SortBy: enums.SortPriceLow})
	assert.Equal(t, []string{"a", "c"}, ids(got))
}

func TestApplyIgnoresUnknownSizes(t *testing.T) {
	got := Apply(filterFixture(), ProductFilters{Sizes: []string{"Huge"}})
	assert.Len(t, got, 4, "a size filter with only unknown labels is a no-op")

	got = Apply(filterFixture(), ProductFilters{Sizes: []string{"Huge", "xs"}})
	assert.Equal(t, []string{"d"}, ids(got))
}

func TestApplyColorExactMembership(t *testing.T) {
	got := Apply(filterFixture(), ProductFilters{Colors: []string{"Black", "White"}})
	assert.Equal(t, []string{"a", "c", "d"}, ids(got))

	got = Apply(filterFixture(), ProductFilters{Colors: []string{"black"}})
	assert.Empty(t, got)
}

func TestApplyActivityAndCategory(t *testing.T) {
	got := Apply(filterFixture(), ProductFilters{Activities: []string{"Running"}})
	assert.Equal(t, []string{"b", "c"}, ids(got))

	got = Apply(filterFixture(), ProductFilters{Categories: []string{"accessories"}})
	assert.Equal(t, []string{"d"}, ids(got))
}

func TestApplyFlagsCombineWithAnd(t *testing.T) {
	got := Apply(filterFixture(), ProductFilters{SustainableOnly: true})
	assert.Equal(t, []string{"a", "c"}, ids(got))

	got = Apply(filterFixture(), ProductFilters{SustainableOnly: true, NewOnly: true})
	assert.Equal(t, []string{"c"}, ids(got))

	got = Apply(filterFixture(), ProductFilters{InStockOnly: true, Colors: []string{"White"}})
	assert.Empty(t, got)
}

func TestApplyPriceRangeInclusive(t *testing.T) {
	upper := decimal.RequireFromString("50")
	got := Apply(filterFixture(), ProductFilters{Price: &PriceRange{Min: decimal.RequireFromString("30"), Max: &upper}})
	assert.Equal(t, []string{"a", "b", "d"}, ids(got))

	got = Apply(filterFixture(), ProductFilters{Price: &PriceRange{Min: decimal.RequireFromString("50.01")}})
	assert.Equal(t, []string{"c"}, ids(got), "nil max is unbounded")
}

func TestApplyQuerySearchesNameDescriptionColor(t *testing.T) {
	products := filterFixture()
	products[1].Description = "Lightweight RUNNING short"

	got := Apply(products, ProductFilters{Query: "running"})
	assert.Equal(t, []string{"b"}, ids(got))

	got = Apply(products, ProductFilters{Query: "  navy "})
	assert.Equal(t, []string{"b"}, ids(got))

	got = Apply(products, ProductFilters{Query: "product c"})
	assert.Equal(t, []string{"c"}, ids(got))
}

func TestApplySorts(t *testing.T) {
	products := filterFixture()

	assert.Equal(t, []string{"b", "c", "a", "d"}, ids(Apply(products, ProductFilters{SortBy: enums.SortNewest})))
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(Apply(products, ProductFilters{SortBy: enums.SortPriceLow})), "ties keep input order")
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(Apply(products, ProductFilters{SortBy: enums.SortPriceHigh})))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(Apply(products, ProductFilters{SortBy: enums.SortPopular})))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(Apply(products, ProductFilters{SortBy: "bogus"})))
}

func TestApplyDoesNotMutateInputAndIsIdempotent(t *testing.T) {
	products := filterFixture()
	before := ids(products)
	f := ProductFilters{Sizes: []string{"M", "L"}, SortBy: enums.SortPriceHigh}

	first := Apply(products, f)
	second := Apply(products, f)

	assert.Equal(t, before, ids(products))
	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, ids(first), ids(Apply(first, f)), "filtering a filtered result changes nothing")
}

func TestActiveFilterCount(t *testing.T) {
	assert.Zero(t, ActiveFilterCount(ProductFilters{SortBy: enums.SortPriceLow}))
	assert.Equal(t, 5, ActiveFilterCount(ProductFilters{
		Sizes:           []string{"S", "M"},
		Colors:          []string{"Black"},
		SustainableOnly: true,
		NewOnly:         true,
	}))
}

func TestBuildFacets(t *testing.T) {
	facets := BuildFacets(filterFixture())

	assert.Equal(t, 4, facets.Total)
	assert.Equal(t, []string{"accessories"}, facets.Categories)
	assert.Equal(t, []string{"Black", "Navy", "White"}, facets.Colors)
	assert.Equal(t, []enums.Size{enums.SizeXS, enums.SizeS, enums.SizeM, enums.SizeL, enums.SizeXL}, facets.Sizes)
	assert.Equal(t, []string{"Running", "Training", "Yoga"}, facets.Activities)
	assert.True(t, facets.MinPrice.Equal(decimal.RequireFromString("30")))
	assert.True(t, facets.MaxPrice.Equal(decimal.RequireFromString("80")))
	assert.Equal(t, 3, facets.InStock)
	assert.Equal(t, 1, facets.OutOfStock)

	empty := BuildFacets(nil)
	require.Zero(t, empty.Total)
	assert.True(t, empty.MinPrice.IsZero())
	assert.Empty(t, empty.Sizes)
}
