package reservation

import (
	"context"

	"washbook/models"
)

// Submitter places a booking with the reservation backend.
type Submitter interface {
	SubmitBooking(ctx context.Context, draft models.BookingDraft) (*models.BookingConfirmation, error)
}

// confirmationFromDraft snapshots the draft into a confirmation.
func confirmationFromDraft(id string, draft models.BookingDraft) *models.BookingConfirmation {
	conf := &models.BookingConfirmation{
		ConfirmationID:  id,
		Service:         draft.Service,
		Date:            draft.Date,
		Time:            draft.Time,
		VehicleType:     draft.VehicleType,
		FirstName:       draft.FirstName,
		LastName:        draft.LastName,
		Email:           draft.Email,
		Phone:           draft.Phone,
		SpecialRequests: draft.SpecialRequests,
	}
	if draft.Location != nil {
		conf.Location = *draft.Location
	}
	return conf
}
