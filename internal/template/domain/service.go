package domain

import (
	"context"
	"errors"
)

// ListRequest filters the template catalog.
type ListRequest struct {
	Name     string   `form:"name"`
	Category Category `form:"category"`
}

// Service is the template store: the authoritative list of templates
// offered to the designer and the print surfaces. Upsert and Remove return
// the resulting catalog so callers can swap their view in one step; Upsert
// also returns the saved template, id assigned, so the designer can keep
// addressing the template it just created.
type Service interface {
	List(ctx context.Context, req ListRequest) ([]Template, error)
	ListByCategory(ctx context.Context, category Category) ([]Template, error)
	GetByID(ctx context.Context, id string) (*Template, error)
	Upsert(ctx context.Context, tpl Template) (*Template, []Template, error)
	Remove(ctx context.Context, id string) ([]Template, error)
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidCategory    = errors.New("invalid_category")
	ErrInvalidCanvas      = errors.New("invalid_canvas")
	ErrInvalidElementID   = errors.New("invalid_element_id")
	ErrInvalidElementType = errors.New("invalid_element_type")
	ErrInvalidElementSize = errors.New("invalid_element_size")
	ErrElementOutOfBounds = errors.New("element_out_of_bounds")
	ErrDuplicateElementID = errors.New("duplicate_element_id")
	ErrNotFound           = errors.New("not_found")
)
