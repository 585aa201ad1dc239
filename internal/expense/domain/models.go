package domain

import (
	"context"
	"errors"
	"time"
)

// Expense is one operating cost entry, optionally tied to a fleet vehicle
// (fuel, repairs, insurance premiums).
type Expense struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	Label     string    `gorm:"type:text;not null" json:"label"`
	Category  string    `gorm:"type:text;index" json:"category"`
	Amount    int64     `gorm:"not null" json:"amount"`
	VehicleID string    `gorm:"type:text;index" json:"vehicleId,omitempty"`
	SpentAt   time.Time `gorm:"not null" json:"spentAt"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (Expense) TableName() string { return "expenses" }

type ListRequest struct {
	Category  string `form:"category"`
	VehicleID string `form:"vehicle_id"`
}

type Service interface {
	Create(ctx context.Context, expense Expense) (*Expense, error)
	List(ctx context.Context, req ListRequest) ([]Expense, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID     = errors.New("invalid_expense_id")
	ErrInvalidLabel  = errors.New("invalid_expense_label")
	ErrInvalidAmount = errors.New("invalid_expense_amount")
	ErrNotFound      = errors.New("expense_not_found")
)
