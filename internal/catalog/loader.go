package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/shahzada-shah/flow-studios/pkg/config"
	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
)

// LoaderFor picks the catalog source named by cfg. The database source
// requires conn.
func LoaderFor(cfg config.CatalogConfig, conn *gorm.DB) (Loader, error) {
	switch cfg.Source {
	case config.CatalogSourceDatabase:
		if conn == nil {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, "database catalog source requires a database connection")
		}
		return NewRepository(conn), nil
	case config.CatalogSourceEmbedded, "":
		return NewSeedLoader(cfg.SeedPath), nil
	default:
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown catalog source %q", cfg.Source)
	}
}

// Open loads the catalog once and indexes it.
func Open(ctx context.Context, loader Loader) (*Store, error) {
	products, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewStore(products)
}
