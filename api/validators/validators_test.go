package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
)

type addBody struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"p-1","quantity":2}`))
	var body addBody
	require.NoError(t, DecodeJSONBody(req, &body))
	assert.Equal(t, addBody{ProductID: "p-1", Quantity: 2}, body)
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"p-1","quantity":1,"price":"0"}`))
	var body addBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDecodeJSONBodyReportsFieldsByJSONName(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":0}`))
	var body addBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)

	details, ok := pkgerrors.As(err).Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["product_id"])
	assert.Equal(t, "must be at least 1", details["quantity"])
}

func TestDecodeJSONBodyRejectsTrailingData(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"p-1","quantity":1}{"product_id":"p-2","quantity":1}`))
	var body addBody
	assert.True(t, pkgerrors.IsCode(DecodeJSONBody(req, &body), pkgerrors.CodeValidation))
}

func TestDecodeJSONBodyReportsTypeMismatch(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"p-1","quantity":"two"}`))
	var body addBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)
	details, ok := pkgerrors.As(err).Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be a int", details["quantity"])
}

func TestDecodeJSONBodyCapsSize(t *testing.T) {
	big := `{"product_id":"` + strings.Repeat("x", maxBodyBytes) + `","quantity":1}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	var body addBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)
	assert.Equal(t, "request body too large", pkgerrors.As(err).Message())
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=10&bad=x&big=500", nil)

	v, err := ParseQueryInt(req, "limit", 20, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	v, err = ParseQueryInt(req, "missing", 20, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 20, v)

	_, err = ParseQueryInt(req, "bad", 20, 1, 100)
	assert.Error(t, err)
	_, err = ParseQueryInt(req, "big", 20, 1, 100)
	assert.Error(t, err)
}

func TestParseQueryList(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?size=S,M&size=L&size=S&size=,&color=", nil)
	assert.Equal(t, []string{"S", "M", "L"}, ParseQueryList(req, "size"))
	assert.Empty(t, ParseQueryList(req, "color"))
	assert.Nil(t, ParseQueryList(req, "activity"))
}

func TestParseQueryBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?in_stock=true&new=0&bad=maybe", nil)

	v, err := ParseQueryBool(req, "in_stock")
	require.NoError(t, err)
	assert.True(t, v)

	v, err = ParseQueryBool(req, "new")
	require.NoError(t, err)
	assert.False(t, v)

	v, err = ParseQueryBool(req, "absent")
	require.NoError(t, err)
	assert.False(t, v)

	_, err = ParseQueryBool(req, "bad")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestParseQueryDecimal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?min_price=49.5&neg=-1&bad=abc", nil)

	v, err := ParseQueryDecimal(req, "min_price")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "49.5", v.String())

	v, err = ParseQueryDecimal(req, "max_price")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = ParseQueryDecimal(req, "neg")
	assert.Error(t, err)
	_, err = ParseQueryDecimal(req, "bad")
	assert.Error(t, err)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "abc", SanitizeString("  abcdef ", 3))
	assert.Equal(t, "abc", SanitizeString(" abc ", 0))
	assert.Equal(t, "black leggings", SanitizeString("black \t  leggings", 0))
	assert.Equal(t, "café", SanitizeString("café crème", 4))
}
