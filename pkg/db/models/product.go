package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is the persisted catalog row.
type Product struct {
	ID            string          `gorm:"column:id;type:text;primaryKey"`
	Name          string          `gorm:"column:name;not null"`
	Slug          string          `gorm:"column:slug;not null;uniqueIndex:products_slug_key"`
	Description   string          `gorm:"column:description;not null;default:''"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Categories    pq.StringArray  `gorm:"column:categories;type:text[];not null;default:'{}'"`
	Color         string          `gorm:"column:color;not null"`
	ImageURL      *string         `gorm:"column:image_url"`
	Sizes         pq.StringArray  `gorm:"column:sizes;type:text[];not null;default:'{}'"`
	Activities    pq.StringArray  `gorm:"column:activities;type:text[];not null;default:'{}'"`
	IsSustainable bool            `gorm:"column:is_sustainable;not null"`
	IsNew         bool            `gorm:"column:is_new;not null"`
	InStock       bool            `gorm:"column:in_stock;not null"`
	IsBestseller  bool            `gorm:"column:is_bestseller;not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
