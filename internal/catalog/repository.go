package catalog

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shahzada-shah/flow-studios/internal/repo"
	"github.com/shahzada-shah/flow-studios/pkg/db"
	"github.com/shahzada-shah/flow-studios/pkg/db/models"
	"github.com/shahzada-shah/flow-studios/pkg/enums"
	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
)

// Repository reads and writes the products table.
type Repository struct {
	repo.Base
}

var _ Loader = (*Repository)(nil)

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithDB(tx)}
}

// Load implements Loader.
func (r *Repository) Load(ctx context.Context) ([]Product, error) {
	return r.LoadAll(ctx)
}

// LoadAll returns every product, oldest first so catalog order is stable.
func (r *Repository) LoadAll(ctx context.Context) ([]Product, error) {
	if !r.Ready() {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog repository has no database")
	}
	var rows []models.Product
	if err := r.DB(ctx).Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromModel(row))
	}
	return out, nil
}

// Upsert inserts products or overwrites the rows with matching ids.
func (r *Repository) Upsert(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return nil
	}
	rows := make([]models.Product, 0, len(products))
	for _, p := range products {
		rows = append(rows, toModel(p))
	}
	err := r.DB(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(&rows).Error
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product slug already in use")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert products")
	}
	return nil
}

func fromModel(m models.Product) Product {
	sizes := make([]enums.Size, 0, len(m.Sizes))
	for _, s := range m.Sizes {
		sizes = append(sizes, enums.Size(s))
	}
	return Product{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Price:       m.Price,
		Categories:  cloneOrEmpty([]string(m.Categories)),
		Color:       m.Color,
		ImageURL:    m.ImageURL,
		Sizes:       sizes,
		Activities:  cloneOrEmpty([]string(m.Activities)),
		Sustainable: m.IsSustainable,
		New:         m.IsNew,
		InStock:     m.InStock,
		Bestseller:  m.IsBestseller,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toModel(p Product) models.Product {
	sizes := make(pq.StringArray, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		sizes = append(sizes, s.String())
	}
	return models.Product{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Price:         p.Price,
		Categories:    pq.StringArray(cloneOrEmpty(p.Categories)),
		Color:         p.Color,
		ImageURL:      p.ImageURL,
		Sizes:         sizes,
		Activities:    pq.StringArray(cloneOrEmpty(p.Activities)),
		IsSustainable: p.Sustainable,
		IsNew:         p.New,
		InStock:       p.InStock,
		IsBestseller:  p.Bestseller,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
