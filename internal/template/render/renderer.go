package render

import "github.com/abdouni493/auto-rental-application/internal/template/domain"

// DocumentData is the resolved business record a document is rendered
// against: the reservation plus its linked customer and vehicle. Either
// link may be absent; substitution then degrades to empty strings.
type DocumentData struct {
	Reservation ReservationView
	Customer    *CustomerView
	Vehicle     *VehicleView
}

type ReservationView struct {
	Number      string
	TotalAmount int64
}

type CustomerView struct {
	FirstName string
	LastName  string
	Phone     string
}

type VehicleView struct {
	Brand string
	Model string
	Plate string
}

// RenderInput is the deterministic input for producing a printable page.
type RenderInput struct {
	Template domain.Template
	Data     DocumentData
}

// Renderer substitutes placeholder tokens and reproduces a template as a
// fixed-size printable page. The same renderer serves the billing,
// operations and planner print surfaces.
type Renderer interface {
	Substitute(content string, data DocumentData) string
	RenderHTML(input RenderInput) (string, error)
}
