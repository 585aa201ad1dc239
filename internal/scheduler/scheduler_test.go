package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/abdouni493/auto-rental-application/internal/clock"
	"github.com/abdouni493/auto-rental-application/internal/events"
	reservationdomain "github.com/abdouni493/auto-rental-application/internal/reservation/domain"
	reservationrepository "github.com/abdouni493/auto-rental-application/internal/reservation/repository"
	vehicledomain "github.com/abdouni493/auto-rental-application/internal/vehicle/domain"
	vehiclerepository "github.com/abdouni493/auto-rental-application/internal/vehicle/repository"
)

var dbSeq int

func newTestScheduler(t *testing.T) (*Scheduler, *gorm.DB, time.Time) {
	t.Helper()

	dbSeq++
	dsn := fmt.Sprintf("file:scheduler_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	err = db.AutoMigrate(&reservationdomain.Reservation{}, &vehicledomain.Vehicle{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec(`CREATE TABLE rental_events (
		id INTEGER PRIMARY KEY,
		event_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		dedupe_key TEXT,
		published BOOLEAN NOT NULL DEFAULT false,
		created_at DATETIME NOT NULL
	)`).Error; err != nil {
		t.Fatalf("create rental_events: %v", err)
	}
	if err := db.Exec(`CREATE UNIQUE INDEX idx_rental_events_dedupe ON rental_events (dedupe_key)`).Error; err != nil {
		t.Fatalf("create dedupe index: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	now := time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC)
	s := New(Params{
		DB:             db,
		Log:            zap.NewNop(),
		Clock:          clock.FixedClock{Instant: now},
		Outbox:         events.NewOutbox(db, node),
		ReservationRep: reservationrepository.Provide(),
		VehicleRep:     vehiclerepository.Provide(),
	})
	return s, db, now
}

func countEvents(t *testing.T, db *gorm.DB, eventType string) int64 {
	t.Helper()
	var count int64
	if err := db.Table("rental_events").Where("event_type = ?", eventType).Count(&count).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	return count
}

func TestSweepOverdueReservations(t *testing.T) {
	s, db, now := newTestScheduler(t)
	ctx := context.Background()

	rows := []reservationdomain.Reservation{
		{
			ID: "res-late", Number: "RES-0001", CustomerID: "cus-1", VehicleID: "veh-1",
			StartDate: now.Add(-96 * time.Hour), EndDate: now.Add(-24 * time.Hour),
			Status: reservationdomain.StatusActive, TotalAmount: 21000,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "res-running", Number: "RES-0002", CustomerID: "cus-2", VehicleID: "veh-2",
			StartDate: now.Add(-24 * time.Hour), EndDate: now.Add(48 * time.Hour),
			Status: reservationdomain.StatusActive, TotalAmount: 14000,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "res-closed", Number: "RES-0003", CustomerID: "cus-3", VehicleID: "veh-3",
			StartDate: now.Add(-96 * time.Hour), EndDate: now.Add(-48 * time.Hour),
			Status: reservationdomain.StatusCompleted, TotalAmount: 14000,
			CreatedAt: now, UpdatedAt: now,
		},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed reservations: %v", err)
	}

	if err := s.SweepOverdueReservations(ctx); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if count := countEvents(t, db, events.EventReservationOverdue); count != 1 {
		t.Fatalf("overdue events = %d, want 1", count)
	}

	// A second run on the same day is deduplicated.
	if err := s.SweepOverdueReservations(ctx); err != nil {
		t.Fatalf("repeat sweep: %v", err)
	}
	if count := countEvents(t, db, events.EventReservationOverdue); count != 1 {
		t.Fatalf("overdue events after repeat = %d, want 1", count)
	}
}

func TestSweepExpiringInsurance(t *testing.T) {
	s, db, now := newTestScheduler(t)
	ctx := context.Background()

	rows := []vehicledomain.Vehicle{
		{
			ID: "veh-soon", Brand: "Renault", Model: "Clio 5", Plate: "00123-316-16",
			DailyRate: 7000, Status: vehicledomain.StatusAvailable,
			InsuranceExpiry: now.Add(10 * 24 * time.Hour),
			CreatedAt:       now, UpdatedAt: now,
		},
		{
			ID: "veh-covered", Brand: "Dacia", Model: "Duster", Plate: "00456-316-31",
			DailyRate: 8000, Status: vehicledomain.StatusAvailable,
			InsuranceExpiry: now.Add(120 * 24 * time.Hour),
			CreatedAt:       now, UpdatedAt: now,
		},
		{
			ID: "veh-retired", Brand: "Peugeot", Model: "301", Plate: "00789-313-09",
			DailyRate: 6000, Status: vehicledomain.StatusRetired,
			InsuranceExpiry: now.Add(5 * 24 * time.Hour),
			CreatedAt:       now, UpdatedAt: now,
		},
		{
			ID: "veh-uninsured", Brand: "Fiat", Model: "500", Plate: "00321-324-42",
			DailyRate: 5000, Status: vehicledomain.StatusAvailable,
			CreatedAt: now, UpdatedAt: now,
		},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed vehicles: %v", err)
	}

	if err := s.SweepExpiringInsurance(ctx); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if count := countEvents(t, db, events.EventVehicleInsuranceExpiry); count != 1 {
		t.Fatalf("insurance events = %d, want 1", count)
	}

	var keys []string
	err := db.Table("rental_events").
		Where("event_type = ?", events.EventVehicleInsuranceExpiry).
		Pluck("dedupe_key", &keys).Error
	if err != nil {
		t.Fatalf("read dedupe key: %v", err)
	}
	if len(keys) != 1 || keys[0] != "insurance:veh-soon:2024-06-01" {
		t.Fatalf("dedupe keys = %v", keys)
	}

	if err := s.SweepExpiringInsurance(ctx); err != nil {
		t.Fatalf("repeat sweep: %v", err)
	}
	if count := countEvents(t, db, events.EventVehicleInsuranceExpiry); count != 1 {
		t.Fatalf("insurance events after repeat = %d, want 1", count)
	}
}
