package handlers

import (
	"context"
	"errors"
	"net/http"

	"washbook/models"
	"washbook/services/booking"
	"washbook/services/reservation"
	"washbook/utils"

	"github.com/gin-gonic/gin"
)

// writeBookingError maps booking and submission errors to HTTP responses.
func writeBookingError(c *gin.Context, err error) {
	var verr *booking.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.JSONErrorBody(c, http.StatusUnprocessableEntity, utils.ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
			Fields:  verr.Fields,
		})
	case errors.Is(err, booking.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking session not found", err.Error())
	case errors.Is(err, reservation.ErrConflict):
		utils.JSONErrorBody(c, http.StatusConflict, utils.ErrorResponse{
			Message: "Time slot no longer available",
			Details: err.Error(),
			Step:    int(models.StepSchedule),
		})
	case errors.Is(err, booking.ErrStepNotReachable),
		errors.Is(err, booking.ErrSubmitRequired),
		errors.Is(err, booking.ErrBookingFinalized),
		errors.Is(err, booking.ErrSubmissionInFlight),
		errors.Is(err, booking.ErrSessionChanged):
		utils.JSONError(c, http.StatusConflict, "Booking step not allowed", err.Error())
	case errors.Is(err, reservation.ErrRejected):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Booking rejected", err.Error())
	case errors.Is(err, reservation.ErrNetwork):
		utils.JSONError(c, http.StatusBadGateway, "Booking service unavailable", err.Error())
	case errors.Is(err, booking.ErrUnknownField):
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking field", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		utils.JSONError(c, http.StatusRequestTimeout, "Request cancelled", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}
