package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abdouni493/auto-rental-application/internal/clock"
	"github.com/abdouni493/auto-rental-application/internal/events"
	reservationdomain "github.com/abdouni493/auto-rental-application/internal/reservation/domain"
	vehicledomain "github.com/abdouni493/auto-rental-application/internal/vehicle/domain"
)

const (
	sweepBatchSize = 200

	// Insurance expiry is announced this far ahead so the agency can renew
	// before the vehicle has to leave the rental pool.
	insuranceNoticePeriod = 30 * 24 * time.Hour
)

type Params struct {
	fx.In

	DB             *gorm.DB
	Log            *zap.Logger
	Clock          clock.Clock
	Outbox         *events.Outbox
	ReservationRep reservationdomain.Repository
	VehicleRep     vehicledomain.Repository
}

// Scheduler runs the daily back-office sweeps: flagging reservations kept
// past their end date and vehicles whose insurance is about to lapse.
type Scheduler struct {
	db             *gorm.DB
	log            *zap.Logger
	clock          clock.Clock
	outbox         *events.Outbox
	reservationRep reservationdomain.Repository
	vehicleRep     vehicledomain.Repository

	cron *cron.Cron
}

func New(p Params) *Scheduler {
	return &Scheduler{
		db:             p.DB,
		log:            p.Log.Named("scheduler"),
		clock:          p.Clock,
		outbox:         p.Outbox,
		reservationRep: p.ReservationRep,
		vehicleRep:     p.VehicleRep,
		cron:           cron.New(),
	}
}

// Register wires the sweeps into the fx lifecycle. Jobs run at 06:00 so
// results are waiting when the agency opens.
func Register(lc fx.Lifecycle, s *Scheduler) error {
	if _, err := s.cron.AddFunc("0 6 * * *", func() { s.runSweeps(context.Background()) }); err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.cron.Start()
			s.log.Info("scheduler started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopped := s.cron.Stop()
			select {
			case <-stopped.Done():
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		},
	})
	return nil
}

func (s *Scheduler) runSweeps(ctx context.Context) {
	if err := s.SweepOverdueReservations(ctx); err != nil {
		s.log.Error("overdue sweep failed", zap.Error(err))
	}
	if err := s.SweepExpiringInsurance(ctx); err != nil {
		s.log.Error("insurance sweep failed", zap.Error(err))
	}
}

// SweepOverdueReservations publishes an overdue event for every active
// reservation past its end date. The dedupe key keeps one event per
// reservation per day even when sweeps overlap.
func (s *Scheduler) SweepOverdueReservations(ctx context.Context) error {
	now := s.clock.Now().UTC()
	day := now.Format("2006-01-02")

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, err := s.reservationRep.OverdueIDs(ctx, tx, now, sweepBatchSize)
		if err != nil {
			return err
		}
		for _, id := range ids {
			err := s.outbox.PublishTx(ctx, tx, events.Event{
				Type:      events.EventReservationOverdue,
				Payload:   events.ReservationPayload{ReservationID: id, Status: string(reservationdomain.StatusActive)}.ToMap(),
				DedupeKey: fmt.Sprintf("overdue:%s:%s", id, day),
			})
			if err != nil {
				return err
			}
		}
		if len(ids) > 0 {
			s.log.Info("overdue reservations flagged", zap.Int("count", len(ids)))
		}
		return nil
	})
}

// SweepExpiringInsurance publishes one event per vehicle whose insurance
// lapses within the notice period.
func (s *Scheduler) SweepExpiringInsurance(ctx context.Context) error {
	now := s.clock.Now().UTC()
	day := now.Format("2006-01-02")

	vehicles, err := s.vehicleRep.ExpiringInsurance(ctx, s.db, now.Add(insuranceNoticePeriod))
	if err != nil {
		return err
	}
	for _, vehicle := range vehicles {
		err := s.outbox.Publish(ctx, events.Event{
			Type: events.EventVehicleInsuranceExpiry,
			Payload: map[string]any{
				"vehicle_id":       vehicle.ID,
				"plate":            vehicle.Plate,
				"insurance_expiry": vehicle.InsuranceExpiry.Format("2006-01-02"),
			},
			DedupeKey: fmt.Sprintf("insurance:%s:%s", vehicle.ID, day),
		})
		if err != nil {
			return err
		}
	}
	if len(vehicles) > 0 {
		s.log.Info("expiring insurance flagged", zap.Int("count", len(vehicles)))
	}
	return nil
}
