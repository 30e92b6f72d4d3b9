package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-3))
	assert.Equal(t, 10, NormalizeLimit(10))
	assert.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+1))
}

func TestCursorRoundTrip(t *testing.T) {
	offset, err := ParseCursor(EncodeCursor(42))
	require.NoError(t, err)
	assert.Equal(t, 42, offset)

	offset, err = ParseCursor("  ")
	require.NoError(t, err)
	assert.Zero(t, offset)

	_, err = ParseCursor("%%%")
	assert.Error(t, err)
	_, err = ParseCursor(EncodeCursor(-1))
	assert.Error(t, err)
}

func TestWindowWalksPages(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	first, page, err := Window(items, Params{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, first)
	assert.Equal(t, 5, page.Total)
	require.NotEmpty(t, page.NextCursor)

	second, page, err := Window(items, Params{Limit: 2, Cursor: page.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, second)

	last, page, err := Window(items, Params{Limit: 2, Cursor: page.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []int{5}, last)
	assert.Empty(t, page.NextCursor)

	beyond, _, err := Window(items, Params{Cursor: EncodeCursor(10)})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}
