package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Upsert(ctx context.Context, db *gorm.DB, tpl *Template) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Template, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]Template, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
}
