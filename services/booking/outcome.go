package booking

import (
	"context"
	"errors"

	"washbook/models"
	"washbook/services/reservation"
)

// submissionOutcome is the metrics label for a failed submission.
func submissionOutcome(err error) string {
	switch {
	case errors.Is(err, reservation.ErrConflict):
		return "conflict"
	case errors.Is(err, reservation.ErrRejected):
		return "rejected"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "network"
	}
}

// checkConfirmation treats an accepted submission without a confirmation as a network failure.
func checkConfirmation(conf *models.BookingConfirmation, err error) (*models.BookingConfirmation, error) {
	if err == nil && conf == nil {
		return nil, &reservation.SubmissionError{Kind: reservation.KindNetwork, Message: "booking service returned no confirmation"}
	}
	return conf, err
}
