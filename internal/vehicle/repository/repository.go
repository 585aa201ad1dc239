package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/abdouni493/auto-rental-application/internal/vehicle/domain"
)

type store struct{}

func Provide() domain.Repository { return store{} }

func (store) Create(ctx context.Context, db *gorm.DB, vehicle *domain.Vehicle) error {
	return db.WithContext(ctx).Create(vehicle).Error
}

func (store) Update(ctx context.Context, db *gorm.DB, vehicle *domain.Vehicle) error {
	result := db.WithContext(ctx).
		Model(&domain.Vehicle{}).
		Where("id = ?", vehicle.ID).
		Select("*").Omit("id", "created_at").
		Updates(vehicle)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (store) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := db.WithContext(ctx).First(&vehicle, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

func (store) List(ctx context.Context, db *gorm.DB, req domain.ListRequest) ([]domain.Vehicle, int64, error) {
	query := db.WithContext(ctx).Model(&domain.Vehicle{})
	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("brand LIKE ? OR model LIKE ? OR plate LIKE ?", like, like, like)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vehicles []domain.Vehicle
	err := query.
		Order("created_at DESC").
		Limit(req.Limit()).
		Offset(req.Offset()).
		Find(&vehicles).Error
	if err != nil {
		return nil, 0, err
	}
	return vehicles, total, nil
}

// ExpiringInsurance returns active fleet units whose insurance lapses
// before the given instant. Retired vehicles are skipped.
func (store) ExpiringInsurance(ctx context.Context, db *gorm.DB, before time.Time) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	err := db.WithContext(ctx).
		Where("status <> ?", domain.StatusRetired).
		Where("insurance_expiry > ? AND insurance_expiry <= ?", time.Time{}, before).
		Order("insurance_expiry ASC").
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (store) Delete(ctx context.Context, db *gorm.DB, id string) error {
	result := db.WithContext(ctx).Delete(&domain.Vehicle{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
