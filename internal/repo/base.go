// Package repo holds the connection plumbing shared by gorm-backed repositories.
package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base carries the connection a repository issues its queries on.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection bound to ctx. A nil ctx yields the raw connection.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// WithDB rebinds the base to another handle, typically an open transaction.
func (b Base) WithDB(tx *gorm.DB) Base {
	if tx == nil {
		return b
	}
	return Base{db: tx}
}

// Ready reports whether a connection was supplied.
func (b Base) Ready() bool {
	return b.db != nil
}
