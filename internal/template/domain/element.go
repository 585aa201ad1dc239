package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ElementType discriminates the placeable content blocks of a template.
type ElementType string

const (
	ElementStatic        ElementType = "static"
	ElementVariable      ElementType = "variable"
	ElementLogo          ElementType = "logo"
	ElementTable         ElementType = "table"
	ElementDivider       ElementType = "divider"
	ElementChecklist     ElementType = "checklist"
	ElementSignatureArea ElementType = "signature_area"
	ElementFuelMileage   ElementType = "fuel_mileage"
	ElementQRCode        ElementType = "qr_code"
)

// Valid reports whether t is a known element type.
func (t ElementType) Valid() bool {
	switch t {
	case ElementStatic, ElementVariable, ElementLogo, ElementTable, ElementDivider,
		ElementChecklist, ElementSignatureArea, ElementFuelMileage, ElementQRCode:
		return true
	default:
		return false
	}
}

// TextAlign is the horizontal alignment of a text block.
type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// ChecklistData maps inspection item names to their "present" flag.
type ChecklistData map[string]bool

// Checklist content discriminators selecting which inspection item set a
// checklist block shows.
const (
	ChecklistSecurity  = "security"
	ChecklistEquipment = "equipment"
)

// ChecklistItems returns the named inspection items for a checklist
// discriminator. Anything other than "equipment" falls back to the security
// set, matching the editor's block palette.
func ChecklistItems(discriminator string) []string {
	if discriminator == ChecklistEquipment {
		return []string{"Roue de secours", "Cric", "Triangles", "Trousse secours", "Docs véhicule"}
	}
	return []string{"Feux & Phares", "Pneus", "Freins", "Essuie-glaces", "Rétroviseurs", "Ceintures", "Klaxon"}
}

// Element is one positioned, styled content block within a template. The
// Type tag governs which fields carry meaning: Content is literal text for
// static/variable/logo, the checklist discriminator for checklist elements,
// and unused for the purely structural types. Checklist is populated only
// when Type is ElementChecklist.
type Element struct {
	ID      string      `json:"id"`
	Type    ElementType `json:"type"`
	Label   string      `json:"label"`
	Content string      `json:"content"`

	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`

	FontSize        int       `json:"fontSize"`
	Color           string    `json:"color"`
	BackgroundColor string    `json:"backgroundColor"`
	FontFamily      string    `json:"fontFamily"`
	FontWeight      string    `json:"fontWeight"`
	TextAlign       TextAlign `json:"textAlign"`
	BorderRadius    int       `json:"borderRadius"`
	Padding         int       `json:"padding"`
	BorderWidth     int       `json:"borderWidth"`
	BorderColor     string    `json:"borderColor"`
	LineHeight      float64   `json:"lineHeight"`
	Opacity         float64   `json:"opacity"`
	LetterSpacing   float64   `json:"letterSpacing"`
	ZIndex          int       `json:"zIndex"`

	Checklist ChecklistData `json:"checklist,omitempty"`
}

// ChecklistItemsPresent returns the checklist payload, refusing access for
// non-checklist elements.
func (e Element) ChecklistItemsPresent() (ChecklistData, bool) {
	if e.Type != ElementChecklist {
		return nil, false
	}
	return e.Checklist, true
}

// Validate checks the positional invariants shared by every element type.
func (e Element) Validate() error {
	if e.ID == "" {
		return ErrInvalidElementID
	}
	if !e.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidElementType, e.Type)
	}
	if e.X < 0 || e.Y < 0 {
		return ErrElementOutOfBounds
	}
	if e.Width <= 0 {
		return ErrInvalidElementSize
	}
	return nil
}

// ElementList persists a template's element sequence as one JSON column.
// Insertion order is the initial stacking order; ZIndex overrides it.
type ElementList []Element

// Value implements driver.Valuer.
func (l ElementList) Value() (driver.Value, error) {
	if l == nil {
		l = ElementList{}
	}
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (l *ElementList) Scan(value any) error {
	if value == nil {
		*l = ElementList{}
		return nil
	}
	switch typed := value.(type) {
	case []byte:
		return json.Unmarshal(typed, l)
	case string:
		return json.Unmarshal([]byte(typed), l)
	default:
		return errors.New("unsupported element list column type")
	}
}

// GormDataType tells gorm to store the list as JSON.
func (ElementList) GormDataType() string { return "json" }
