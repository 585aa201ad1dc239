package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abdouni493/auto-rental-application/internal/clock"
	"github.com/abdouni493/auto-rental-application/internal/events"
	"github.com/abdouni493/auto-rental-application/internal/reservation/domain"
	vehicledomain "github.com/abdouni493/auto-rental-application/internal/vehicle/domain"
	"github.com/abdouni493/auto-rental-application/pkg/db/pagination"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	Outbox     *events.Outbox
	VehicleSvc vehicledomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	outbox     *events.Outbox
	vehicleSvc vehicledomain.Service
}

func NewService(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("reservation.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		outbox:     p.Outbox,
		vehicleSvc: p.VehicleSvc,
	}
}

func validate(reservation *domain.Reservation) error {
	if strings.TrimSpace(reservation.CustomerID) == "" {
		return domain.ErrInvalidCustomer
	}
	if strings.TrimSpace(reservation.VehicleID) == "" {
		return domain.ErrInvalidVehicle
	}
	if reservation.StartDate.IsZero() || reservation.EndDate.IsZero() ||
		!reservation.EndDate.After(reservation.StartDate) {
		return domain.ErrInvalidPeriod
	}
	if reservation.TotalAmount <= 0 || reservation.PaidAmount < 0 ||
		reservation.Discount < 0 || reservation.Caution < 0 {
		return domain.ErrInvalidAmount
	}
	return nil
}

func (s *Service) Create(ctx context.Context, reservation domain.Reservation) (*domain.Reservation, error) {
	if err := validate(&reservation); err != nil {
		return nil, err
	}
	if _, err := s.vehicleSvc.GetByID(ctx, reservation.VehicleID); err != nil {
		return nil, domain.ErrInvalidVehicle
	}

	id := s.genID.Generate()
	reservation.ID = "res-" + id.String()
	reservation.Number = fmt.Sprintf("RES-%04d", id.Int64()%10000)
	reservation.Status = domain.StatusDraft

	now := s.clock.Now().UTC()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now

	if err := s.repo.Create(ctx, s.db, &reservation); err != nil {
		return nil, err
	}
	s.log.Info("reservation created",
		zap.String("reservation_id", reservation.ID),
		zap.String("number", reservation.Number),
	)
	return &reservation, nil
}

// Update rewrites the editable fields of a draft or confirmed reservation.
// Active and terminal reservations are frozen.
func (s *Service) Update(ctx context.Context, reservation domain.Reservation) (*domain.Reservation, error) {
	if strings.TrimSpace(reservation.ID) == "" {
		return nil, domain.ErrInvalidID
	}
	if err := validate(&reservation); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, s.db, reservation.ID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.StatusDraft && current.Status != domain.StatusConfirmed {
		return nil, domain.ErrInvalidTransition
	}

	reservation.Number = current.Number
	reservation.Status = current.Status
	reservation.CreatedAt = current.CreatedAt
	reservation.UpdatedAt = s.clock.Now().UTC()

	if err := s.repo.Update(ctx, s.db, &reservation); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, s.db, reservation.ID)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.FindByID(ctx, s.db, id)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	if req.Status != "" && !req.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	reservations, total, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return nil, err
	}
	return &domain.ListResponse{
		Reservations: reservations,
		PageInfo: pagination.PageInfo{
			NextPageToken: req.NextToken(len(reservations)),
			TotalCount:    total,
		},
	}, nil
}

func (s *Service) Confirm(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.StatusConfirmed, "")
}

// Activate hands the vehicle over: the reservation becomes active, a
// departure log is written and the vehicle moves to rented, all in one
// transaction.
func (s *Service) Activate(ctx context.Context, id string, handOver domain.HandOver) (*domain.Reservation, error) {
	reservation, err := s.transition(ctx, id, domain.StatusActive, events.EventReservationActivated, func(tx *gorm.DB, r *domain.Reservation) error {
		return s.repo.AddLog(ctx, tx, s.newLog(r.ID, domain.LogDeparture, handOver))
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.vehicleSvc.SetStatus(ctx, reservation.VehicleID, vehicledomain.StatusRented); err != nil {
		s.log.Warn("vehicle status not updated on activation",
			zap.String("vehicle_id", reservation.VehicleID), zap.Error(err))
	}
	return reservation, nil
}

// Terminate closes the rental: a return log is written, the reservation
// completes and the vehicle returns to the available pool.
func (s *Service) Terminate(ctx context.Context, id string, handOver domain.HandOver) (*domain.Reservation, error) {
	reservation, err := s.transition(ctx, id, domain.StatusCompleted, events.EventReservationTerminated, func(tx *gorm.DB, r *domain.Reservation) error {
		return s.repo.AddLog(ctx, tx, s.newLog(r.ID, domain.LogReturn, handOver))
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.vehicleSvc.SetStatus(ctx, reservation.VehicleID, vehicledomain.StatusAvailable); err != nil {
		s.log.Warn("vehicle status not updated on termination",
			zap.String("vehicle_id", reservation.VehicleID), zap.Error(err))
	}
	return reservation, nil
}

func (s *Service) Cancel(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.StatusCancelled, "")
}

func (s *Service) Logs(ctx context.Context, id string) ([]domain.LocationLog, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidID
	}
	if _, err := s.repo.FindByID(ctx, s.db, id); err != nil {
		return nil, err
	}
	return s.repo.Logs(ctx, s.db, id)
}

func (s *Service) RevenueStats(ctx context.Context) (*domain.RevenueStats, error) {
	return s.repo.RevenueStats(ctx, s.db)
}

func (s *Service) newLog(reservationID string, kind domain.LogKind, handOver domain.HandOver) *domain.LocationLog {
	return &domain.LocationLog{
		ID:            "log-" + s.genID.Generate().String(),
		ReservationID: reservationID,
		Kind:          kind,
		Mileage:       handOver.Mileage,
		FuelLevel:     handOver.FuelLevel,
		Location:      strings.TrimSpace(handOver.Location),
		Notes:         strings.TrimSpace(handOver.Notes),
		RecordedAt:    s.clock.Now().UTC(),
	}
}

// transition moves a reservation to the next workflow state, running any
// extra steps and the outbox write in the same transaction.
func (s *Service) transition(ctx context.Context, id string, next domain.Status, eventType string, steps ...func(tx *gorm.DB, r *domain.Reservation) error) (*domain.Reservation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidID
	}

	reservation, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if !reservation.Status.CanTransition(next) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, reservation.Status, next)
	}

	reservation.Status = next
	reservation.UpdatedAt = s.clock.Now().UTC()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, reservation); err != nil {
			return err
		}
		for _, step := range steps {
			if err := step(tx, reservation); err != nil {
				return err
			}
		}
		if eventType == "" {
			return nil
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			Type: eventType,
			Payload: events.ReservationPayload{
				ReservationID: reservation.ID,
				Number:        reservation.Number,
				Status:        string(next),
			}.ToMap(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("reservation transitioned",
		zap.String("reservation_id", reservation.ID),
		zap.String("status", string(next)),
	)
	return reservation, nil
}
