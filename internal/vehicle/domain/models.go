package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/abdouni493/auto-rental-application/pkg/db/pagination"
)

// Status tracks where a vehicle sits in the rental cycle.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusRented      Status = "rented"
	StatusMaintenance Status = "maintenance"
	StatusRetired     Status = "retired"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusRented, StatusMaintenance, StatusRetired:
		return true
	default:
		return false
	}
}

// FuelType of the vehicle, shown on check-in/check-out documents.
type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelDiesel   FuelType = "diesel"
	FuelGPL      FuelType = "gpl"
	FuelElectric FuelType = "electric"
)

// Vehicle is one fleet unit. Amounts are Algerian dinars stored as whole
// units; the fleet does not price in centimes.
type Vehicle struct {
	ID                string    `gorm:"primaryKey;type:text" json:"id"`
	Brand             string    `gorm:"type:text;not null" json:"brand"`
	Model             string    `gorm:"type:text;not null" json:"model"`
	Year              int       `json:"year"`
	Plate             string    `gorm:"type:text;not null;index" json:"plate"`
	ChassisNumber     string    `gorm:"type:text" json:"chassisNumber"`
	Color             string    `gorm:"type:text" json:"color"`
	FuelType          FuelType  `gorm:"type:text" json:"fuelType"`
	Mileage           int64     `json:"mileage"`
	DailyRate         int64     `gorm:"not null" json:"dailyRate"`
	WeeklyRate        int64     `json:"weeklyRate"`
	MonthlyRate       int64     `json:"monthlyRate"`
	Deposit           int64     `json:"deposit"`
	Status            Status    `gorm:"type:text;not null;index" json:"status"`
	InsuranceExpiry   time.Time `json:"insuranceExpiry"`
	TechControlExpiry time.Time `json:"techControlExpiry"`
	CreatedAt         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Vehicle) TableName() string { return "vehicles" }

// DisplayName renders "Brand Model" for documents and pickers.
func (v Vehicle) DisplayName() string {
	if v.Brand == "" {
		return v.Model
	}
	if v.Model == "" {
		return v.Brand
	}
	return v.Brand + " " + v.Model
}

type ListRequest struct {
	pagination.Pagination
	Search string `form:"search"`
	Status Status `form:"status"`
}

type ListResponse struct {
	Vehicles []Vehicle           `json:"vehicles"`
	PageInfo pagination.PageInfo `json:"pageInfo"`
}

type Service interface {
	Create(ctx context.Context, vehicle Vehicle) (*Vehicle, error)
	Update(ctx context.Context, vehicle Vehicle) (*Vehicle, error)
	GetByID(ctx context.Context, id string) (*Vehicle, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	SetStatus(ctx context.Context, id string, status Status) (*Vehicle, error)
	Delete(ctx context.Context, id string) error
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, vehicle *Vehicle) error
	Update(ctx context.Context, db *gorm.DB, vehicle *Vehicle) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Vehicle, error)
	List(ctx context.Context, db *gorm.DB, req ListRequest) ([]Vehicle, int64, error)
	ExpiringInsurance(ctx context.Context, db *gorm.DB, before time.Time) ([]Vehicle, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
}

var (
	ErrInvalidID     = errors.New("invalid_vehicle_id")
	ErrInvalidPlate  = errors.New("invalid_vehicle_plate")
	ErrInvalidRate   = errors.New("invalid_vehicle_rate")
	ErrInvalidStatus = errors.New("invalid_vehicle_status")
	ErrNotFound      = errors.New("vehicle_not_found")
)
