package booking

import (
	"context"

	"washbook/models"
)

// BookingSessionService drives a booking wizard stored between HTTP requests.
type BookingSessionService interface {
	Start(ctx context.Context, coords *models.Coordinates) (*models.BookingSession, error)
	Get(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Edit(ctx context.Context, sessionID string, patch models.DraftPatch) (*models.BookingSession, error)
	Next(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Prev(ctx context.Context, sessionID string) (*models.BookingSession, error)
	JumpTo(ctx context.Context, sessionID string, step models.Step) (*models.BookingSession, error)
	Submit(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Cancel(ctx context.Context, sessionID string) error
	Summary(session *models.BookingSession) models.BookingSummary
}

// ReminderScheduler queues a reminder ahead of a confirmed appointment.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, conf models.BookingConfirmation) error
}
