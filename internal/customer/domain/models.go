package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/abdouni493/auto-rental-application/pkg/db/pagination"
)

// Customer is a renter on file. Phone and licence number are personal
// data; the logging layer masks them.
type Customer struct {
	ID            string    `gorm:"primaryKey;type:text" json:"id"`
	FirstName     string    `gorm:"type:text;not null" json:"firstName"`
	LastName      string    `gorm:"type:text;not null" json:"lastName"`
	Phone         string    `gorm:"type:text" json:"phone"`
	Email         string    `gorm:"type:text" json:"email"`
	LicenseNumber string    `gorm:"type:text" json:"licenseNumber"`
	Wilaya        string    `gorm:"type:text" json:"wilaya"`
	Address       string    `gorm:"type:text" json:"address"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Customer) TableName() string { return "customers" }

// FullName renders "First Last" for documents and search results.
func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

type ListRequest struct {
	pagination.Pagination
	Search string `form:"search"`
	Wilaya string `form:"wilaya"`
}

type ListResponse struct {
	Customers []Customer          `json:"customers"`
	PageInfo  pagination.PageInfo `json:"pageInfo"`
}

type Service interface {
	Create(ctx context.Context, customer Customer) (*Customer, error)
	Update(ctx context.Context, customer Customer) (*Customer, error)
	GetByID(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	Delete(ctx context.Context, id string) error
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, customer *Customer) error
	Update(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Customer, error)
	List(ctx context.Context, db *gorm.DB, req ListRequest) ([]Customer, int64, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
}

var (
	ErrInvalidID   = errors.New("invalid_customer_id")
	ErrInvalidName = errors.New("invalid_customer_name")
	ErrNotFound    = errors.New("customer_not_found")
)
