package domain

import (
	"time"
)

// Category controls which business action a template serves.
type Category string

const (
	CategoryInvoice  Category = "invoice"
	CategoryQuote    Category = "quote"
	CategoryContract Category = "contract"
	CategoryCheckIn  Category = "check_in"
	CategoryCheckOut Category = "check_out"
)

// Valid reports whether c is one of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryInvoice, CategoryQuote, CategoryContract, CategoryCheckIn, CategoryCheckOut:
		return true
	default:
		return false
	}
}

// Default canvas dimensions, an A4 page at 72 dpi.
const (
	DefaultCanvasWidth  = 595
	DefaultCanvasHeight = 842
)

// Template is a named, sized document layout composed of positioned
// elements. It is persisted whole on explicit save, never partially.
type Template struct {
	ID           string      `gorm:"primaryKey;type:text" json:"id"`
	Name         string      `gorm:"type:text;not null" json:"name"`
	Category     Category    `gorm:"type:text;not null;index" json:"category"`
	CanvasWidth  int         `gorm:"not null" json:"canvasWidth"`
	CanvasHeight int         `gorm:"not null" json:"canvasHeight"`
	Elements     ElementList `gorm:"type:jsonb;not null" json:"elements"`
	CreatedAt    time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt    time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// TableName sets the database table name.
func (Template) TableName() string { return "templates" }

// Blank returns an empty template for the given category with the default
// page size, ready to open in the designer.
func Blank(name string, category Category) Template {
	return Template{
		Name:         name,
		Category:     category,
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
		Elements:     ElementList{},
	}
}

// Validate checks the template invariants: a known category, positive
// canvas dimensions and element ids unique within the template.
func (t Template) Validate() error {
	if t.Name == "" {
		return ErrInvalidName
	}
	if !t.Category.Valid() {
		return ErrInvalidCategory
	}
	if t.CanvasWidth <= 0 || t.CanvasHeight <= 0 {
		return ErrInvalidCanvas
	}
	seen := make(map[string]struct{}, len(t.Elements))
	for _, element := range t.Elements {
		if err := element.Validate(); err != nil {
			return err
		}
		if _, dup := seen[element.ID]; dup {
			return ErrDuplicateElementID
		}
		seen[element.ID] = struct{}{}
	}
	return nil
}

// Element returns the element with the given id, if present.
func (t Template) Element(id string) (Element, bool) {
	for _, element := range t.Elements {
		if element.ID == id {
			return element, true
		}
	}
	return Element{}, false
}

// Clone deep-copies the template so an editor session owns its working
// copy exclusively.
func (t Template) Clone() Template {
	copied := t
	copied.Elements = make(ElementList, len(t.Elements))
	copy(copied.Elements, t.Elements)
	for i, element := range copied.Elements {
		if element.Checklist == nil {
			continue
		}
		items := make(ChecklistData, len(element.Checklist))
		for name, present := range element.Checklist {
			items[name] = present
		}
		copied.Elements[i].Checklist = items
	}
	return copied
}
