package render

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/abdouni493/auto-rental-application/internal/clock"
)

// Placeholder tokens recognized in element content. Exact, case-sensitive
// substrings; anything else shaped like {{...}} passes through verbatim.
const (
	TokenClientName   = "{{client_name}}"
	TokenClientPhone  = "{{client_phone}}"
	TokenResNumber    = "{{res_number}}"
	TokenTotalAmount  = "{{total_amount}}"
	TokenVehicleName  = "{{vehicle_name}}"
	TokenVehiclePlate = "{{vehicle_plate}}"
	TokenCurrentDate  = "{{current_date}}"
)

type substituter struct {
	clock      clock.Clock
	printer    *message.Printer
	dateLayout string
}

func newSubstituter(locale string, clk clock.Clock) substituter {
	tag := language.French
	layout := "02/01/2006"
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "en":
		tag = language.English
		layout = "01/02/2006"
	case "ar":
		tag = language.Arabic
	case "", "fr":
	default:
		if parsed, err := language.Parse(locale); err == nil {
			tag = parsed
		}
	}
	return substituter{
		clock:      clk,
		printer:    message.NewPrinter(tag),
		dateLayout: layout,
	}
}

// substitute replaces every occurrence of each recognized token with its
// resolved value. It is pure with respect to its inputs apart from
// {{current_date}}, which reads the injected clock; substituted values are
// never re-scanned for tokens.
func (s substituter) substitute(content string, data DocumentData) string {
	if content == "" || !strings.Contains(content, "{{") {
		return content
	}
	replacer := strings.NewReplacer(
		TokenClientName, clientName(data.Customer),
		TokenClientPhone, clientPhone(data.Customer),
		TokenResNumber, data.Reservation.Number,
		TokenTotalAmount, s.printer.Sprintf("%d", data.Reservation.TotalAmount),
		TokenVehicleName, vehicleName(data.Vehicle),
		TokenVehiclePlate, vehiclePlate(data.Vehicle),
		TokenCurrentDate, s.clock.Now().Format(s.dateLayout),
	)
	return replacer.Replace(content)
}

func clientName(customer *CustomerView) string {
	if customer == nil {
		return ""
	}
	return strings.TrimSpace(customer.FirstName + " " + customer.LastName)
}

func clientPhone(customer *CustomerView) string {
	if customer == nil {
		return ""
	}
	return customer.Phone
}

func vehicleName(vehicle *VehicleView) string {
	if vehicle == nil {
		return ""
	}
	return strings.TrimSpace(vehicle.Brand + " " + vehicle.Model)
}

func vehiclePlate(vehicle *VehicleView) string {
	if vehicle == nil {
		return ""
	}
	return vehicle.Plate
}
