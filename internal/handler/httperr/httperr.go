package httperr

import (
	"errors"
	"net/http"

	"courtbook/internal/domain/waitlist"
	"courtbook/internal/infra"
	"courtbook/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for the error middleware and monitoring
func AbortWithError(c *gin.Context, status int, err error, code, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Code = code
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// FromError maps usecase sentinels onto the wire taxonomy. Anything
// unclassified is a 500 so bugs do not hide behind client-error codes.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidTimeSlot) || errors.Is(err, errs.ErrInvalidGuest):
		AbortWithError(c, http.StatusBadRequest, err, "VALIDATION", "Request failed validation", nil)
	case errors.Is(err, errs.ErrNotEligible):
		AbortWithError(c, http.StatusForbidden, err, "ELIGIBILITY", "Membership is not eligible to book", nil)
	case errors.Is(err, errs.ErrOutOfBookingWindow):
		AbortWithError(c, http.StatusUnprocessableEntity, err, "OUT_OF_WINDOW", "Target date is outside the booking window", nil)
	case errors.Is(err, errs.ErrSlotConflict):
		AbortWithError(c, http.StatusConflict, err, "CONFLICT", "Slot is already booked", nil)
	case errors.Is(err, errs.ErrSlotNotBooked) || errors.Is(err, waitlist.ErrInvalidTransition):
		AbortWithError(c, http.StatusConflict, err, "INVALID_STATE", "Operation does not fit the current state", nil)
	case errors.Is(err, errs.ErrWaitlistNotOwned):
		AbortWithError(c, http.StatusForbidden, err, "FORBIDDEN", "Entry belongs to another member", nil)
	case errors.Is(err, errs.ErrResourceNotFound) ||
		errors.Is(err, errs.ErrReservationNotFound) ||
		errors.Is(err, errs.ErrWaitlistEntryNotFound) ||
		errors.Is(err, errs.ErrMaintenanceNotFound) ||
		infra.IsKind(err, infra.KindNotFound):
		AbortWithError(c, http.StatusNotFound, err, "NOT_FOUND", "Requested entity does not exist", nil)
	case errs.IsTransient(err):
		AbortWithError(c, http.StatusServiceUnavailable, err, "TRANSIENT", "Temporary failure, retry shortly", nil)
	default:
		AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL", "Internal server error", nil)
	}
}
