package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/abdouni493/auto-rental-application/internal/template/domain"
)

type store struct{}

// Provide returns the gorm-backed template repository.
func Provide() domain.Repository {
	return store{}
}

func (store) Upsert(ctx context.Context, db *gorm.DB, tpl *domain.Template) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(tpl).Error
}

func (store) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Template, error) {
	var tpl domain.Template
	err := db.WithContext(ctx).First(&tpl, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &tpl, nil
}

func (store) List(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.Template, error) {
	query := db.WithContext(ctx).Model(&domain.Template{})
	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var templates []domain.Template
	if err := query.Order("created_at DESC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (store) Delete(ctx context.Context, db *gorm.DB, id string) error {
	result := db.WithContext(ctx).Delete(&domain.Template{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
