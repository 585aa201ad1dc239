package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abdouni493/auto-rental-application/internal/events"
	"github.com/abdouni493/auto-rental-application/internal/template/domain"
	"github.com/abdouni493/auto-rental-application/internal/template/render"
)

// Print surfaces. Billing prints invoices, operations prints check-in
// and check-out sheets, the planner prints contracts; all three share
// the same renderer.
const (
	SurfaceBilling    = "billing"
	SurfaceOperations = "operations"
	SurfacePlanner    = "planner"
)

type printDocumentRequest struct {
	TemplateID    string `json:"templateId"`
	ReservationID string `json:"reservationId"`
	Surface       string `json:"surface"`
}

func (s *Server) PrintDocument(c *gin.Context) {
	var req printDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	switch req.Surface {
	case SurfaceBilling, SurfaceOperations, SurfacePlanner:
	default:
		AbortWithError(c, newValidationError("surface", "invalid_surface", "surface must be billing, operations or planner"))
		return
	}

	ctx := c.Request.Context()
	tpl, err := s.templateSvc.GetByID(ctx, req.TemplateID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data, err := s.documentData(ctx, req.ReservationID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	page, err := s.renderDocument(*tpl, data, req.Surface)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.outbox.Publish(ctx, events.Event{
		Type: events.EventDocumentPrinted,
		Payload: events.DocumentPrintedPayload{
			TemplateID:    tpl.ID,
			Category:      string(tpl.Category),
			ReservationID: req.ReservationID,
			Surface:       req.Surface,
		}.ToMap(),
	}); err != nil {
		s.log.Warn("print event not recorded", zap.Error(err))
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// documentData assembles the business record a document renders against.
// An empty reservation id yields an empty record; a dangling customer or
// vehicle link degrades to an absent view rather than failing the print.
func (s *Server) documentData(ctx context.Context, reservationID string) (render.DocumentData, error) {
	if reservationID == "" {
		return render.DocumentData{}, nil
	}

	reservation, err := s.reservationSvc.GetByID(ctx, reservationID)
	if err != nil {
		return render.DocumentData{}, err
	}

	data := render.DocumentData{
		Reservation: render.ReservationView{
			Number:      reservation.Number,
			TotalAmount: reservation.TotalAmount,
		},
	}
	if customer, err := s.customerSvc.GetByID(ctx, reservation.CustomerID); err == nil {
		data.Customer = &render.CustomerView{
			FirstName: customer.FirstName,
			LastName:  customer.LastName,
			Phone:     customer.Phone,
		}
	}
	if vehicle, err := s.vehicleSvc.GetByID(ctx, reservation.VehicleID); err == nil {
		data.Vehicle = &render.VehicleView{
			Brand: vehicle.Brand,
			Model: vehicle.Model,
			Plate: vehicle.Plate,
		}
	}
	return data, nil
}

func (s *Server) renderDocument(tpl domain.Template, data render.DocumentData, surface string) (string, error) {
	start := time.Now()
	page, err := s.renderer.RenderHTML(render.RenderInput{Template: tpl, Data: data})
	if err != nil {
		return "", err
	}
	s.docMetrics.ObserveRender(string(tpl.Category), surface, time.Since(start))
	return page, nil
}
