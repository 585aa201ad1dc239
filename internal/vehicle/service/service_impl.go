package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abdouni493/auto-rental-application/internal/vehicle/domain"
	"github.com/abdouni493/auto-rental-application/pkg/db/pagination"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("vehicle.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func validate(vehicle *domain.Vehicle) error {
	vehicle.Plate = strings.TrimSpace(vehicle.Plate)
	if vehicle.Plate == "" {
		return domain.ErrInvalidPlate
	}
	if vehicle.DailyRate <= 0 {
		return domain.ErrInvalidRate
	}
	if vehicle.Status == "" {
		vehicle.Status = domain.StatusAvailable
	}
	if !vehicle.Status.Valid() {
		return domain.ErrInvalidStatus
	}
	return nil
}

func (s *Service) Create(ctx context.Context, vehicle domain.Vehicle) (*domain.Vehicle, error) {
	if err := validate(&vehicle); err != nil {
		return nil, err
	}

	vehicle.ID = "veh-" + s.genID.Generate().String()
	now := time.Now().UTC()
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now

	if err := s.repo.Create(ctx, s.db, &vehicle); err != nil {
		return nil, err
	}
	s.log.Info("vehicle created",
		zap.String("vehicle_id", vehicle.ID),
		zap.String("plate", vehicle.Plate),
	)
	return &vehicle, nil
}

func (s *Service) Update(ctx context.Context, vehicle domain.Vehicle) (*domain.Vehicle, error) {
	if strings.TrimSpace(vehicle.ID) == "" {
		return nil, domain.ErrInvalidID
	}
	if err := validate(&vehicle); err != nil {
		return nil, err
	}
	vehicle.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, &vehicle); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, s.db, vehicle.ID)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.FindByID(ctx, s.db, id)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	if req.Status != "" && !req.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	vehicles, total, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return nil, err
	}
	return &domain.ListResponse{
		Vehicles: vehicles,
		PageInfo: pagination.PageInfo{
			NextPageToken: req.NextToken(len(vehicles)),
			TotalCount:    total,
		},
	}, nil
}

// SetStatus moves a vehicle between fleet states, e.g. to rented when a
// reservation activates and back to available on return.
func (s *Service) SetStatus(ctx context.Context, id string, status domain.Status) (*domain.Vehicle, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidID
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	err := s.db.WithContext(ctx).
		Model(&domain.Vehicle{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()}).Error
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, s.db, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, s.db, id); err != nil {
		return err
	}
	s.log.Info("vehicle deleted", zap.String("vehicle_id", id))
	return nil
}
