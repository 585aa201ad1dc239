package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abdouni493/auto-rental-application/internal/cache"
	"github.com/abdouni493/auto-rental-application/internal/events"
	"github.com/abdouni493/auto-rental-application/internal/observability/metrics"
	"github.com/abdouni493/auto-rental-application/internal/template/domain"
)

const catalogTTL = 30 * time.Second

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Outbox  *events.Outbox
	Metrics *metrics.DocumentMetrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	outbox  *events.Outbox
	metrics *metrics.DocumentMetrics

	catalog *cache.TTLCache[domain.Category, []domain.Template]
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("template.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		outbox:  p.Outbox,
		metrics: p.Metrics,
		catalog: cache.NewTTLCache[domain.Category, []domain.Template](),
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Template, error) {
	if req.Category != "" && !req.Category.Valid() {
		return nil, domain.ErrInvalidCategory
	}
	return s.repo.List(ctx, s.db, req)
}

// ListByCategory serves the print modals; results are cached briefly since
// every print action starts with this lookup.
func (s *Service) ListByCategory(ctx context.Context, category domain.Category) ([]domain.Template, error) {
	if !category.Valid() {
		return nil, domain.ErrInvalidCategory
	}
	if cached, ok := s.catalog.Get(category); ok {
		return cached, nil
	}
	templates, err := s.repo.List(ctx, s.db, domain.ListRequest{Category: category})
	if err != nil {
		return nil, err
	}
	s.catalog.Set(category, templates, catalogTTL)
	return templates, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.FindByID(ctx, s.db, id)
}

// Upsert replaces the stored template with the same id, or appends a new
// one, and returns the saved template along with the resulting catalog.
// The save is all-or-nothing: a failed write leaves the store untouched so
// the designer keeps its unsaved working copy.
func (s *Service) Upsert(ctx context.Context, tpl domain.Template) (*domain.Template, []domain.Template, error) {
	tpl.Name = strings.TrimSpace(tpl.Name)
	if err := tpl.Validate(); err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(tpl.ID) == "" {
		tpl.ID = "tpl-" + s.genID.Generate().String()
	}
	if tpl.Elements == nil {
		tpl.Elements = domain.ElementList{}
	}

	now := time.Now().UTC()
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = now
	}
	tpl.UpdatedAt = now

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Upsert(ctx, tx, &tpl); err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			Type: events.EventTemplateSaved,
			Payload: events.TemplatePayload{
				TemplateID: tpl.ID,
				Name:       tpl.Name,
				Category:   string(tpl.Category),
			}.ToMap(),
		})
	})
	if err != nil {
		s.log.Error("template save failed", zap.String("template_id", tpl.ID), zap.Error(err))
		return nil, nil, err
	}

	s.catalog.Flush()
	s.metrics.ObserveTemplateSave(string(tpl.Category))
	s.log.Info("template saved",
		zap.String("template_id", tpl.ID),
		zap.String("category", string(tpl.Category)),
		zap.Int("elements", len(tpl.Elements)),
	)

	catalog, err := s.repo.List(ctx, s.db, domain.ListRequest{})
	if err != nil {
		return nil, nil, err
	}
	return &tpl, catalog, nil
}

// Remove deletes a template by id and returns the resulting catalog.
func (s *Service) Remove(ctx context.Context, id string) ([]domain.Template, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Delete(ctx, tx, id); err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			Type:    events.EventTemplateDeleted,
			Payload: events.TemplatePayload{TemplateID: id}.ToMap(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.catalog.Flush()
	s.log.Info("template deleted", zap.String("template_id", id))

	return s.repo.List(ctx, s.db, domain.ListRequest{})
}
