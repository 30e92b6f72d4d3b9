package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"

	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
	"github.com/shahzada-shah/flow-studios/pkg/validation"
)

//go:embed seed/products.json
var embeddedSeed []byte

// Loader produces the catalog contents at start.
type Loader interface {
	Load(ctx context.Context) ([]Product, error)
}

// SeedLoader reads the catalog from a JSON document: the embedded seed by
// default, or a file on disk when a path is configured.
type SeedLoader struct {
	path     string
	validate *validator.Validate
}

var _ Loader = (*SeedLoader)(nil)

func NewSeedLoader(path string) *SeedLoader {
	return &SeedLoader{path: strings.TrimSpace(path), validate: validation.New()}
}

func (l *SeedLoader) Load(ctx context.Context) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := embeddedSeed
	if l.path != "" {
		b, err := os.ReadFile(l.path)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read catalog seed")
		}
		raw = b
	}
	return l.decode(raw)
}

// EmbeddedSeed returns a copy of the bundled catalog document.
func EmbeddedSeed() []byte {
	return bytes.Clone(embeddedSeed)
}

func (l *SeedLoader) decode(raw []byte) ([]Product, error) {
	var products []Product
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&products); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode catalog seed")
	}
	if err := l.check(products); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid catalog seed")
	}
	return products, nil
}

// check reports every invalid record at once instead of stopping at the first.
func (l *SeedLoader) check(products []Product) error {
	var errs error
	for i, p := range products {
		if err := l.validate.Struct(p); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("product[%d] %q: %w", i, p.ID, err))
		}
		if p.Price.IsNegative() {
			errs = multierr.Append(errs, fmt.Errorf("product[%d] %q: negative price %s", i, p.ID, p.Price))
		}
	}
	return errs
}
