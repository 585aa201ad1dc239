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

	"github.com/abdouni493/auto-rental-application/internal/agency/domain"
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
		log:   p.Log.Named("agency.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, agency domain.Agency) (*domain.Agency, error) {
	agency.Name = strings.TrimSpace(agency.Name)
	if agency.Name == "" {
		return nil, domain.ErrInvalidName
	}

	agency.ID = "agc-" + s.genID.Generate().String()
	now := time.Now().UTC()
	agency.CreatedAt = now
	agency.UpdatedAt = now

	if err := s.db.WithContext(ctx).Create(&agency).Error; err != nil {
		return nil, err
	}
	s.log.Info("agency created", zap.String("agency_id", agency.ID))
	return &agency, nil
}

func (s *Service) Update(ctx context.Context, agency domain.Agency) (*domain.Agency, error) {
	if strings.TrimSpace(agency.ID) == "" {
		return nil, domain.ErrInvalidID
	}
	agency.Name = strings.TrimSpace(agency.Name)
	if agency.Name == "" {
		return nil, domain.ErrInvalidName
	}
	agency.UpdatedAt = time.Now().UTC()

	result := s.db.WithContext(ctx).
		Model(&domain.Agency{}).
		Where("id = ?", agency.ID).
		Select("*").Omit("id", "created_at").
		Updates(agency)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return s.GetByID(ctx, agency.ID)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Agency, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidID
	}
	var agency domain.Agency
	err := s.db.WithContext(ctx).First(&agency, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &agency, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Agency, error) {
	var agencies []domain.Agency
	err := s.db.WithContext(ctx).Order("created_at ASC").Find(&agencies).Error
	if err != nil {
		return nil, err
	}
	return agencies, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidID
	}
	result := s.db.WithContext(ctx).Delete(&domain.Agency{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
