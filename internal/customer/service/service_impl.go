package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abdouni493/auto-rental-application/internal/customer/domain"
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
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	customer.FirstName = strings.TrimSpace(customer.FirstName)
	customer.LastName = strings.TrimSpace(customer.LastName)
	if customer.FirstName == "" && customer.LastName == "" {
		return nil, domain.ErrInvalidName
	}

	customer.ID = "cus-" + s.genID.Generate().String()
	now := time.Now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	if err := s.repo.Create(ctx, s.db, &customer); err != nil {
		return nil, err
	}
	s.log.Info("customer created", zap.String("customer_id", customer.ID))
	return &customer, nil
}

func (s *Service) Update(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	if strings.TrimSpace(customer.ID) == "" {
		return nil, domain.ErrInvalidID
	}
	customer.FirstName = strings.TrimSpace(customer.FirstName)
	customer.LastName = strings.TrimSpace(customer.LastName)
	if customer.FirstName == "" && customer.LastName == "" {
		return nil, domain.ErrInvalidName
	}
	customer.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, &customer); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, s.db, customer.ID)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.FindByID(ctx, s.db, id)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	customers, total, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return nil, err
	}
	return &domain.ListResponse{
		Customers: customers,
		PageInfo: pagination.PageInfo{
			NextPageToken: req.NextToken(len(customers)),
			TotalCount:    total,
		},
	}, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, s.db, id); err != nil {
		return err
	}
	s.log.Info("customer deleted", zap.String("customer_id", id))
	return nil
}
