package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	agencydomain "github.com/abdouni493/auto-rental-application/internal/agency/domain"
	customerdomain "github.com/abdouni493/auto-rental-application/internal/customer/domain"
	expensedomain "github.com/abdouni493/auto-rental-application/internal/expense/domain"
	"github.com/abdouni493/auto-rental-application/internal/insights"
	reservationdomain "github.com/abdouni493/auto-rental-application/internal/reservation/domain"
	"github.com/abdouni493/auto-rental-application/internal/template/editor"
	templatedomain "github.com/abdouni493/auto-rental-application/internal/template/domain"
	vehicledomain "github.com/abdouni493/auto-rental-application/internal/vehicle/domain"
	workerdomain "github.com/abdouni493/auto-rental-application/internal/worker/domain"
)

// APIError is the wire shape for failed requests.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *APIError) Error() string { return e.Code }

func invalidRequestError() *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "request body or query could not be parsed",
	}
}

func newValidationError(field, code, message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    code,
		Message: message,
		Field:   field,
	}
}

var notFoundErrors = []error{
	templatedomain.ErrNotFound,
	customerdomain.ErrNotFound,
	vehicledomain.ErrNotFound,
	reservationdomain.ErrNotFound,
	agencydomain.ErrNotFound,
	workerdomain.ErrNotFound,
	expensedomain.ErrNotFound,
	editor.ErrSessionNotFound,
}

var badRequestErrors = []error{
	templatedomain.ErrInvalidID,
	templatedomain.ErrInvalidName,
	templatedomain.ErrInvalidCategory,
	templatedomain.ErrInvalidCanvas,
	templatedomain.ErrInvalidElementID,
	templatedomain.ErrInvalidElementType,
	templatedomain.ErrInvalidElementSize,
	templatedomain.ErrElementOutOfBounds,
	templatedomain.ErrDuplicateElementID,
	customerdomain.ErrInvalidID,
	customerdomain.ErrInvalidName,
	vehicledomain.ErrInvalidID,
	vehicledomain.ErrInvalidPlate,
	vehicledomain.ErrInvalidRate,
	vehicledomain.ErrInvalidStatus,
	reservationdomain.ErrInvalidID,
	reservationdomain.ErrInvalidCustomer,
	reservationdomain.ErrInvalidVehicle,
	reservationdomain.ErrInvalidPeriod,
	reservationdomain.ErrInvalidAmount,
	reservationdomain.ErrInvalidStatus,
	agencydomain.ErrInvalidID,
	agencydomain.ErrInvalidName,
	workerdomain.ErrInvalidID,
	workerdomain.ErrInvalidName,
	workerdomain.ErrInvalidAmount,
	workerdomain.ErrInvalidPayment,
	expensedomain.ErrInvalidID,
	expensedomain.ErrInvalidLabel,
	expensedomain.ErrInvalidAmount,
	insights.ErrInvalidQuestion,
}

// AbortWithError maps service errors onto HTTP responses. Unknown errors
// become an opaque 500 so internals never leak to the client.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": &APIError{
				Code:    sentinel.Error(),
				Message: "resource not found",
			}})
			return
		}
	}
	for _, sentinel := range badRequestErrors {
		if errors.Is(err, sentinel) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": &APIError{
				Code:    sentinel.Error(),
				Message: "request was rejected",
			}})
			return
		}
	}
	if errors.Is(err, reservationdomain.ErrInvalidTransition) {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": &APIError{
			Code:    reservationdomain.ErrInvalidTransition.Error(),
			Message: "reservation status does not allow this action",
		}})
		return
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": &APIError{
		Code:    "internal_error",
		Message: "an unexpected error occurred",
	}})
}
