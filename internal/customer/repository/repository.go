package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/abdouni493/auto-rental-application/internal/customer/domain"
)

type store struct{}

func Provide() domain.Repository { return store{} }

func (store) Create(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Create(customer).Error
}

func (store) Update(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	result := db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("id = ?", customer.ID).
		Select("*").Omit("id", "created_at").
		Updates(customer)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (store) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (store) List(ctx context.Context, db *gorm.DB, req domain.ListRequest) ([]domain.Customer, int64, error) {
	query := db.WithContext(ctx).Model(&domain.Customer{})
	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where(
			"first_name LIKE ? OR last_name LIKE ? OR phone LIKE ? OR license_number LIKE ?",
			like, like, like, like,
		)
	}
	if req.Wilaya != "" {
		query = query.Where("wilaya = ?", req.Wilaya)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []domain.Customer
	err := query.
		Order("created_at DESC").
		Limit(req.Limit()).
		Offset(req.Offset()).
		Find(&customers).Error
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (store) Delete(ctx context.Context, db *gorm.DB, id string) error {
	result := db.WithContext(ctx).Delete(&domain.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
