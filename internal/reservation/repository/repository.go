package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/abdouni493/auto-rental-application/internal/reservation/domain"
)

type store struct{}

func Provide() domain.Repository { return store{} }

func (store) Create(ctx context.Context, db *gorm.DB, reservation *domain.Reservation) error {
	return db.WithContext(ctx).Create(reservation).Error
}

func (store) Update(ctx context.Context, db *gorm.DB, reservation *domain.Reservation) error {
	// Select("*") so cleared fields (a removed discount, emptied notes)
	// are written too; struct updates would skip zero values.
	result := db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Where("id = ?", reservation.ID).
		Select("*").Omit("id", "created_at").
		Updates(reservation)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (store) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Reservation, error) {
	var reservation domain.Reservation
	err := db.WithContext(ctx).First(&reservation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (store) List(ctx context.Context, db *gorm.DB, req domain.ListRequest) ([]domain.Reservation, int64, error) {
	query := db.WithContext(ctx).Model(&domain.Reservation{})
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.CustomerID != "" {
		query = query.Where("customer_id = ?", req.CustomerID)
	}
	if req.VehicleID != "" {
		query = query.Where("vehicle_id = ?", req.VehicleID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reservations []domain.Reservation
	err := query.
		Order("created_at DESC").
		Limit(req.Limit()).
		Offset(req.Offset()).
		Find(&reservations).Error
	if err != nil {
		return nil, 0, err
	}
	return reservations, total, nil
}

func (store) AddLog(ctx context.Context, db *gorm.DB, log *domain.LocationLog) error {
	return db.WithContext(ctx).Create(log).Error
}

func (store) Logs(ctx context.Context, db *gorm.DB, reservationID string) ([]domain.LocationLog, error) {
	var logs []domain.LocationLog
	err := db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("recorded_at ASC, id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// RevenueStats aggregates income over active and completed reservations.
// Discounts reduce revenue; the caution deposit is returned and never
// counts as income.
func (store) RevenueStats(ctx context.Context, db *gorm.DB) (*domain.RevenueStats, error) {
	var stats domain.RevenueStats
	err := db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Select("COALESCE(SUM(total_amount - discount), 0) AS total_revenue, COUNT(*) AS count").
		Where("status IN ?", []domain.Status{domain.StatusActive, domain.StatusCompleted}).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	if stats.Count > 0 {
		stats.Average = stats.TotalRevenue / stats.Count
	}
	return &stats, nil
}

// OverdueIDs fetches active reservations past their end date. Rows are
// locked so concurrent sweep runs do not double-report; the limit bounds
// one sweep batch.
func (store) OverdueIDs(ctx context.Context, db *gorm.DB, asOf time.Time, limit int) ([]string, error) {
	var ids []string
	query := db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Where("status = ?", domain.StatusActive).
		Where("end_date < ?", asOf).
		Order("end_date ASC").
		Limit(limit)
	if db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
	}
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
