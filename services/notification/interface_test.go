package notification

import (
	"context"
	"testing"

	"washbook/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLogNotificationService(t *testing.T) {
	svc := NewLogNotificationService(zap.NewNop())
	p := models.ReminderPayload{
		ConfirmationID: "WB-1",
		FirstName:      "Ada",
		Service:        "premium",
		LocationName:   "San Diego",
		Date:           "2026-10-17",
		Time:           "9:30 AM",
	}

	assert.NoError(t, svc.SendBookingReminder(context.Background(), p))
	assert.Error(t, svc.SendBookingReminder(context.Background(), models.ReminderPayload{}))
	assert.Equal(t, "Your premium is coming up", ReminderTitle(p))
	assert.Equal(t, "Hi Ada, see you at San Diego on 2026-10-17 at 9:30 AM. Confirmation WB-1.", ReminderBody(p))
}
