package reservation

import (
	"context"
	"strings"
	"time"

	"washbook/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SimulatedAPI stands in for the booking backend: it waits Latency and accepts every booking.
type SimulatedAPI struct {
	Latency time.Duration
	Logger  *zap.Logger
}

func NewSimulatedAPI(latency time.Duration, logger *zap.Logger) *SimulatedAPI {
	return &SimulatedAPI{Latency: latency, Logger: logger}
}

func (s *SimulatedAPI) SubmitBooking(ctx context.Context, draft models.BookingDraft) (*models.BookingConfirmation, error) {
	if s.Latency > 0 {
		timer := time.NewTimer(s.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	id := "WB-" + strings.ToUpper(uuid.New().String()[:8])
	conf := confirmationFromDraft(id, draft)
	conf.CreatedAt = time.Now().UTC()
	s.Logger.Info("Simulated booking accepted", zap.String("confirmationId", id))
	return conf, nil
}
