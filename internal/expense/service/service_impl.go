package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abdouni493/auto-rental-application/internal/expense/domain"
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
		log:   p.Log.Named("expense.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, expense domain.Expense) (*domain.Expense, error) {
	expense.Label = strings.TrimSpace(expense.Label)
	if expense.Label == "" {
		return nil, domain.ErrInvalidLabel
	}
	if expense.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	expense.ID = "exp-" + s.genID.Generate().String()
	now := time.Now().UTC()
	if expense.SpentAt.IsZero() {
		expense.SpentAt = now
	}
	expense.CreatedAt = now

	if err := s.db.WithContext(ctx).Create(&expense).Error; err != nil {
		return nil, err
	}
	s.log.Info("expense recorded",
		zap.String("expense_id", expense.ID),
		zap.String("category", expense.Category),
	)
	return &expense, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Expense, error) {
	query := s.db.WithContext(ctx).Model(&domain.Expense{})
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}
	if req.VehicleID != "" {
		query = query.Where("vehicle_id = ?", req.VehicleID)
	}

	var expenses []domain.Expense
	if err := query.Order("spent_at DESC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidID
	}
	result := s.db.WithContext(ctx).Delete(&domain.Expense{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
