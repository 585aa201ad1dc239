package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abdouni493/auto-rental-application/internal/worker/domain"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("worker.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, worker domain.Worker) (*domain.Worker, error) {
	worker.FirstName = strings.TrimSpace(worker.FirstName)
	worker.LastName = strings.TrimSpace(worker.LastName)
	if worker.FirstName == "" && worker.LastName == "" {
		return nil, domain.ErrInvalidName
	}

	worker.ID = "wrk-" + s.genID.Generate().String()
	worker.Active = true
	now := time.Now().UTC()
	worker.CreatedAt = now
	worker.UpdatedAt = now

	if err := s.db.WithContext(ctx).Create(&worker).Error; err != nil {
		return nil, err
	}
	s.log.Info("worker created", zap.String("worker_id", worker.ID))
	return &worker, nil
}

func (s *Service) Update(ctx context.Context, worker domain.Worker) (*domain.Worker, error) {
	if strings.TrimSpace(worker.ID) == "" {
		return nil, domain.ErrInvalidID
	}
	worker.UpdatedAt = time.Now().UTC()

	result := s.db.WithContext(ctx).
		Model(&domain.Worker{}).
		Where("id = ?", worker.ID).
		Updates(map[string]any{
			"first_name": worker.FirstName,
			"last_name":  worker.LastName,
			"phone":      worker.Phone,
			"role":       worker.Role,
			"salary":     worker.Salary,
			"active":     worker.Active,
			"updated_at": worker.UpdatedAt,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return s.GetByID(ctx, worker.ID)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Worker, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidID
	}
	var worker domain.Worker
	err := s.db.WithContext(ctx).First(&worker, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &worker, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Worker, error) {
	var workers []domain.Worker
	err := s.db.WithContext(ctx).Order("created_at ASC").Find(&workers).Error
	if err != nil {
		return nil, err
	}
	return workers, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidID
	}
	result := s.db.WithContext(ctx).Delete(&domain.Worker{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddPayment records a salary transaction against an existing worker.
func (s *Service) AddPayment(ctx context.Context, payment domain.Payment) (*domain.Payment, error) {
	if payment.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	switch payment.Kind {
	case domain.PaymentSalary, domain.PaymentAdvance, domain.PaymentBonus:
	default:
		return nil, domain.ErrInvalidPayment
	}
	if _, err := s.GetByID(ctx, payment.WorkerID); err != nil {
		return nil, err
	}

	payment.ID = "pay-" + s.genID.Generate().String()
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now().UTC()
	}

	if err := s.db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, err
	}
	s.log.Info("worker payment recorded",
		zap.String("worker_id", payment.WorkerID),
		zap.String("kind", payment.Kind),
	)
	return &payment, nil
}

func (s *Service) Payments(ctx context.Context, workerID string) ([]domain.Payment, error) {
	if _, err := s.GetByID(ctx, workerID); err != nil {
		return nil, err
	}
	var payments []domain.Payment
	err := s.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("paid_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
