package notification

import (
	"context"
	"fmt"

	"washbook/models"

	"go.uber.org/zap"
)

// NotificationService delivers appointment reminders to customers.
type NotificationService interface {
	SendBookingReminder(ctx context.Context, p models.ReminderPayload) error
}

// LogNotificationService records reminders in the log. It is the only channel
// until an email or SMS provider is configured.
type LogNotificationService struct {
	logger *zap.Logger
}

func NewLogNotificationService(logger *zap.Logger) *LogNotificationService {
	return &LogNotificationService{logger: logger}
}

func (s *LogNotificationService) SendBookingReminder(ctx context.Context, p models.ReminderPayload) error {
	if p.ConfirmationID == "" {
		return fmt.Errorf("reminder payload has no confirmation id")
	}
	s.logger.Info("Booking reminder",
		zap.String("confirmationId", p.ConfirmationID),
		zap.String("email", p.Email),
		zap.String("title", ReminderTitle(p)),
		zap.String("body", ReminderBody(p)))
	return nil
}

func ReminderTitle(p models.ReminderPayload) string {
	return fmt.Sprintf("Your %s is coming up", p.Service)
}

func ReminderBody(p models.ReminderPayload) string {
	return fmt.Sprintf("Hi %s, see you at %s on %s at %s. Confirmation %s.",
		p.FirstName, p.LocationName, p.Date, p.Time, p.ConfirmationID)
}
