package events

// Rental event types recorded in the outbox.
const (
	EventTemplateSaved          = "template.saved"
	EventTemplateDeleted        = "template.deleted"
	EventDocumentPrinted        = "document.printed"
	EventReservationActivated   = "reservation.activated"
	EventReservationTerminated  = "reservation.terminated"
	EventReservationOverdue     = "reservation.overdue"
	EventVehicleInsuranceExpiry = "vehicle.insurance_expiring"
)

// TemplatePayload captures the minimal data needed to audit a template change.
type TemplatePayload struct {
	TemplateID string `json:"template_id"`
	Name       string `json:"name,omitempty"`
	Category   string `json:"category,omitempty"`
}

func (p TemplatePayload) ToMap() map[string]any {
	payload := map[string]any{
		"template_id": p.TemplateID,
	}
	if p.Name != "" {
		payload["name"] = p.Name
	}
	if p.Category != "" {
		payload["category"] = p.Category
	}
	return payload
}

// DocumentPrintedPayload records which template produced a document, and for
// which reservation and call site.
type DocumentPrintedPayload struct {
	TemplateID    string `json:"template_id"`
	Category      string `json:"category"`
	ReservationID string `json:"reservation_id,omitempty"`
	Surface       string `json:"surface,omitempty"`
}

func (p DocumentPrintedPayload) ToMap() map[string]any {
	payload := map[string]any{
		"template_id": p.TemplateID,
		"category":    p.Category,
	}
	if p.ReservationID != "" {
		payload["reservation_id"] = p.ReservationID
	}
	if p.Surface != "" {
		payload["surface"] = p.Surface
	}
	return payload
}

// ReservationPayload captures reservation lifecycle transitions.
type ReservationPayload struct {
	ReservationID string `json:"reservation_id"`
	Number        string `json:"number,omitempty"`
	Status        string `json:"status,omitempty"`
}

func (p ReservationPayload) ToMap() map[string]any {
	payload := map[string]any{
		"reservation_id": p.ReservationID,
	}
	if p.Number != "" {
		payload["number"] = p.Number
	}
	if p.Status != "" {
		payload["status"] = p.Status
	}
	return payload
}
