package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/abdouni493/auto-rental-application/pkg/db/pagination"
)

// Status is the reservation lifecycle state. Allowed transitions:
// draft → confirmed → active → completed, with cancelled reachable from
// draft and confirmed.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusConfirmed Status = "confirmed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransition reports whether the workflow allows moving to next.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusDraft:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusActive || next == StatusCancelled
	case StatusActive:
		return next == StatusCompleted
	default:
		return false
	}
}

// Reservation is one rental agreement. Amounts are whole Algerian dinars.
type Reservation struct {
	ID         string `gorm:"primaryKey;type:text" json:"id"`
	Number     string `gorm:"type:text;not null;uniqueIndex" json:"number"`
	CustomerID string `gorm:"type:text;not null;index" json:"customerId"`
	VehicleID  string `gorm:"type:text;not null;index" json:"vehicleId"`

	StartDate time.Time `gorm:"not null" json:"startDate"`
	EndDate   time.Time `gorm:"not null" json:"endDate"`
	Status    Status    `gorm:"type:text;not null;index" json:"status"`

	TotalAmount int64 `gorm:"not null" json:"totalAmount"`
	PaidAmount  int64 `json:"paidAmount"`
	Caution     int64 `json:"caution"`
	Discount    int64 `json:"discount"`
	TVAAmount   int64 `json:"tvaAmount"`

	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Reservation) TableName() string { return "reservations" }

// Balance is what the customer still owes.
func (r Reservation) Balance() int64 {
	return r.TotalAmount - r.Discount - r.PaidAmount
}

// LogKind discriminates departure and return log entries.
type LogKind string

const (
	LogDeparture LogKind = "departure"
	LogReturn    LogKind = "return"
)

// LocationLog records the vehicle condition at hand-over and return.
type LocationLog struct {
	ID            string    `gorm:"primaryKey;type:text" json:"id"`
	ReservationID string    `gorm:"type:text;not null;index" json:"reservationId"`
	Kind          LogKind   `gorm:"type:text;not null" json:"kind"`
	Mileage       int64     `json:"mileage"`
	FuelLevel     int       `json:"fuelLevel"`
	Location      string    `gorm:"type:text" json:"location"`
	Notes         string    `gorm:"type:text" json:"notes"`
	RecordedAt    time.Time `gorm:"not null" json:"recordedAt"`
}

func (LocationLog) TableName() string { return "location_logs" }

// HandOver is the payload for activating or terminating a reservation.
type HandOver struct {
	Mileage   int64  `json:"mileage"`
	FuelLevel int    `json:"fuelLevel"`
	Location  string `json:"location"`
	Notes     string `json:"notes"`
}

// RevenueStats aggregates completed and active rental income.
type RevenueStats struct {
	TotalRevenue int64 `json:"totalRevenue"`
	Count        int64 `json:"count"`
	Average      int64 `json:"average"`
}

type ListRequest struct {
	pagination.Pagination
	Status     Status `form:"status"`
	CustomerID string `form:"customer_id"`
	VehicleID  string `form:"vehicle_id"`
}

type ListResponse struct {
	Reservations []Reservation       `json:"reservations"`
	PageInfo     pagination.PageInfo `json:"pageInfo"`
}

type Service interface {
	Create(ctx context.Context, reservation Reservation) (*Reservation, error)
	Update(ctx context.Context, reservation Reservation) (*Reservation, error)
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	Confirm(ctx context.Context, id string) (*Reservation, error)
	Activate(ctx context.Context, id string, handOver HandOver) (*Reservation, error)
	Terminate(ctx context.Context, id string, handOver HandOver) (*Reservation, error)
	Cancel(ctx context.Context, id string) (*Reservation, error)
	Logs(ctx context.Context, id string) ([]LocationLog, error)
	RevenueStats(ctx context.Context) (*RevenueStats, error)
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, reservation *Reservation) error
	Update(ctx context.Context, db *gorm.DB, reservation *Reservation) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Reservation, error)
	List(ctx context.Context, db *gorm.DB, req ListRequest) ([]Reservation, int64, error)
	AddLog(ctx context.Context, db *gorm.DB, log *LocationLog) error
	Logs(ctx context.Context, db *gorm.DB, reservationID string) ([]LocationLog, error)
	RevenueStats(ctx context.Context, db *gorm.DB) (*RevenueStats, error)
	OverdueIDs(ctx context.Context, db *gorm.DB, asOf time.Time, limit int) ([]string, error)
}

var (
	ErrInvalidID         = errors.New("invalid_reservation_id")
	ErrInvalidCustomer   = errors.New("invalid_reservation_customer")
	ErrInvalidVehicle    = errors.New("invalid_reservation_vehicle")
	ErrInvalidPeriod     = errors.New("invalid_reservation_period")
	ErrInvalidAmount     = errors.New("invalid_reservation_amount")
	ErrInvalidStatus     = errors.New("invalid_reservation_status")
	ErrInvalidTransition = errors.New("invalid_status_transition")
	ErrNotFound          = errors.New("reservation_not_found")
)
