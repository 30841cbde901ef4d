package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"washbook/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.ConfirmationID),
		asynq.MaxRetry(3),
	}

	return task, opts, nil
}

// Enqueuer is the part of *asynq.Client the scheduler needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReminderScheduler queues a reminder Lead before each confirmed appointment.
type ReminderScheduler struct {
	Client Enqueuer
	Lead   time.Duration
	TZ     *time.Location
	Logger *zap.Logger
	Clock  func() time.Time
}

// ReminderFireAt returns when the reminder for an appointment should fire, never in the past.
func ReminderFireAt(conf models.BookingConfirmation, lead time.Duration, tz *time.Location, now time.Time) (time.Time, error) {
	appt, err := time.ParseInLocation("2006-01-02 3:04 PM", conf.Date+" "+conf.Time, tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid appointment time %q %q: %w", conf.Date, conf.Time, err)
	}
	fireAt := appt.Add(-lead)
	if fireAt.Before(now) {
		fireAt = now
	}
	return fireAt, nil
}

func (s *ReminderScheduler) ScheduleReminder(ctx context.Context, conf models.BookingConfirmation) error {
	now := time.Now()
	if s.Clock != nil {
		now = s.Clock()
	}
	fireAt, err := ReminderFireAt(conf, s.Lead, s.TZ, now)
	if err != nil {
		return err
	}

	payload := models.ReminderPayload{
		ConfirmationID: conf.ConfirmationID,
		Email:          conf.Email,
		Phone:          conf.Phone,
		FirstName:      conf.FirstName,
		Service:        conf.Service,
		LocationName:   conf.Location.Name,
		Date:           conf.Date,
		Time:           conf.Time,
		FireDate:       fireAt.UTC().Format(time.RFC3339),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}
	info, err := s.Client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	s.Logger.Info("Reminder scheduled",
		zap.String("confirmationId", conf.ConfirmationID),
		zap.String("taskId", info.ID),
		zap.Time("fireAt", fireAt))
	return nil
}
