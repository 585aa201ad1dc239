package domain

import (
	"context"
	"errors"
	"time"
)

// Worker is a staff member on the agency payroll.
type Worker struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	FirstName string    `gorm:"type:text;not null" json:"firstName"`
	LastName  string    `gorm:"type:text;not null" json:"lastName"`
	Phone     string    `gorm:"type:text" json:"phone"`
	Role      string    `gorm:"type:text" json:"role"`
	Salary    int64     `json:"salary"`
	HiredAt   time.Time `json:"hiredAt"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Worker) TableName() string { return "workers" }

// Payment is one salary or advance transaction for a worker.
type Payment struct {
	ID       string    `gorm:"primaryKey;type:text" json:"id"`
	WorkerID string    `gorm:"type:text;not null;index" json:"workerId"`
	Amount   int64     `gorm:"not null" json:"amount"`
	Kind     string    `gorm:"type:text;not null" json:"kind"`
	Note     string    `gorm:"type:text" json:"note"`
	PaidAt   time.Time `gorm:"not null" json:"paidAt"`
}

func (Payment) TableName() string { return "worker_payments" }

// Payment kinds.
const (
	PaymentSalary  = "salary"
	PaymentAdvance = "advance"
	PaymentBonus   = "bonus"
)

type Service interface {
	Create(ctx context.Context, worker Worker) (*Worker, error)
	Update(ctx context.Context, worker Worker) (*Worker, error)
	GetByID(ctx context.Context, id string) (*Worker, error)
	List(ctx context.Context) ([]Worker, error)
	Delete(ctx context.Context, id string) error
	AddPayment(ctx context.Context, payment Payment) (*Payment, error)
	Payments(ctx context.Context, workerID string) ([]Payment, error)
}

var (
	ErrInvalidID      = errors.New("invalid_worker_id")
	ErrInvalidName    = errors.New("invalid_worker_name")
	ErrInvalidAmount  = errors.New("invalid_payment_amount")
	ErrInvalidPayment = errors.New("invalid_payment_kind")
	ErrNotFound       = errors.New("worker_not_found")
)
