package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/shahzada-shah/flow-studios/pkg/config"
	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
)

func TestEmbeddedSeedLoads(t *testing.T) {
	products, err := NewSeedLoader("").Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 12)

	store, err := NewStore(products)
	require.NoError(t, err)

	p, ok := store.FindBySlug("align-high-rise-legging")
	require.True(t, ok)
	assert.Equal(t, "p-001", p.ID)
	assert.Equal(t, "98.00", p.Price.StringFixed(2))
	assert.True(t, p.Bestseller)
	require.NotNil(t, p.ImageURL)
}

func TestSeedLoaderReadsOverridePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `[{"id":"x1","name":"Tee","slug":"tee","price":"10.00","color":"Red","sizes":["M"],"in_stock":true,"created_at":"2026-01-01T00:00:00Z","updated_at":"2026-01-01T00:00:00Z"}]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	products, err := NewSeedLoader(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "x1", products[0].ID)
}

func TestSeedLoaderCollectsEveryInvalidRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `[
	  {"id":"","name":"No Id","slug":"no-id","price":"10","color":"Red"},
	  {"id":"neg","name":"Negative","slug":"neg","price":"-1","color":"Red"},
	  {"id":"size","name":"Bad Size","slug":"size","price":"1","color":"Red","sizes":["XXXL"]}
	]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	_, err := NewSeedLoader(path).Load(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Len(t, multierr.Errors(pkgerrors.As(err).Unwrap()), 3)
}

func TestSeedLoaderRejectsUnknownFieldsAndMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"a","colour":"Red"}]`), 0o600))
	_, err := NewSeedLoader(path).Load(context.Background())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = NewSeedLoader(filepath.Join(t.TempDir(), "missing.json")).Load(context.Background())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestLoaderFor(t *testing.T) {
	loader, err := LoaderFor(config.CatalogConfig{Source: config.CatalogSourceEmbedded}, nil)
	require.NoError(t, err)
	assert.IsType(t, &SeedLoader{}, loader)

	_, err = LoaderFor(config.CatalogConfig{Source: config.CatalogSourceDatabase}, nil)
	assert.Error(t, err)

	_, err = LoaderFor(config.CatalogConfig{Source: "s3"}, nil)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestOpenBuildsStore(t *testing.T) {
	store, err := Open(context.Background(), NewSeedLoader(""))
	require.NoError(t, err)
	assert.Equal(t, 12, store.Len())
}
