package domain

import (
	"context"
	"errors"
	"time"
)

// Agency is the rental office whose identity appears on printed documents.
type Agency struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Wilaya    string    `gorm:"type:text" json:"wilaya"`
	Address   string    `gorm:"type:text" json:"address"`
	Phone     string    `gorm:"type:text" json:"phone"`
	Email     string    `gorm:"type:text" json:"email"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Agency) TableName() string { return "agencies" }

type Service interface {
	Create(ctx context.Context, agency Agency) (*Agency, error)
	Update(ctx context.Context, agency Agency) (*Agency, error)
	GetByID(ctx context.Context, id string) (*Agency, error)
	List(ctx context.Context) ([]Agency, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID   = errors.New("invalid_agency_id")
	ErrInvalidName = errors.New("invalid_agency_name")
	ErrNotFound    = errors.New("agency_not_found")
)
