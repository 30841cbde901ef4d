package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"washbook/models"
	"washbook/services/location"
	"washbook/services/reservation"
	"washbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingSessionService implements BookingSessionService on a SessionStore.
type DefaultBookingSessionService struct {
	Store         SessionStore
	Rules         Rules
	Resolver      location.LocationResolver
	Submitter     reservation.Submitter
	Reminders     ReminderScheduler // optional
	SubmitTimeout time.Duration
	Logger        *zap.Logger
	Metrics       *utils.BookingMetrics
}

// Start creates a session with the nearest location preselected.
func (s *DefaultBookingSessionService) Start(ctx context.Context, coords *models.Coordinates) (*models.BookingSession, error) {
	res, err := s.Resolver.Resolve(coords)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve location: %w", err)
	}

	state := models.NewBookingState()
	loc := res.Location
	state.Draft.Location = &loc

	now := s.Rules.Now().UTC()
	session := &models.BookingSession{
		SessionID:  uuid.New().String(),
		State:      state,
		Resolution: &res,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	s.Logger.Info("Booking session started",
		zap.String("sessionId", session.SessionID),
		zap.String("location", loc.ID),
		zap.Bool("fallback", res.Fallback))
	return session, nil
}

func (s *DefaultBookingSessionService) Get(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	return s.Store.Load(ctx, sessionID)
}

func (s *DefaultBookingSessionService) Edit(ctx context.Context, sessionID string, patch models.DraftPatch) (*models.BookingSession, error) {
	return s.apply(ctx, sessionID, PatchEvents(patch)...)
}

func (s *DefaultBookingSessionService) Next(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	return s.apply(ctx, sessionID, Next{})
}

func (s *DefaultBookingSessionService) Prev(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	return s.apply(ctx, sessionID, Prev{})
}

func (s *DefaultBookingSessionService) JumpTo(ctx context.Context, sessionID string, step models.Step) (*models.BookingSession, error) {
	return s.apply(ctx, sessionID, JumpTo{Step: step})
}

func (s *DefaultBookingSessionService) Cancel(ctx context.Context, sessionID string) error {
	if err := s.Store.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.Logger.Info("Booking session cancelled", zap.String("sessionId", sessionID))
	return nil
}

func (s *DefaultBookingSessionService) Summary(session *models.BookingSession) models.BookingSummary {
	return Summary(session.State, s.Rules)
}

// apply runs evs in order and stores the result only if all of them succeed.
// Sessions with a submission in flight are left untouched.
func (s *DefaultBookingSessionService) apply(ctx context.Context, sessionID string, evs ...Event) (*models.BookingSession, error) {
	return s.Store.Update(ctx, sessionID, func(session *models.BookingSession) error {
		state := session.State
		for _, ev := range evs {
			out, err := Transition(state, ev, s.Rules)
			if err != nil {
				s.Metrics.Transition(ev.Name(), "rejected")
				return err
			}
			s.Metrics.Transition(ev.Name(), "ok")
			state = out
		}
		session.State = state
		session.UpdatedAt = s.Rules.Now().UTC()
		return nil
	})
}

// Submit places the booking. Concurrent submits for one session are refused with
// ErrSubmissionInFlight before reaching the API. A failed submission returns the
// updated session together with the error; on conflict the session is back at the
// schedule step.
func (s *DefaultBookingSessionService) Submit(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	acquired, err := s.Store.AcquireSubmitLock(ctx, sessionID, s.SubmitTimeout)
	if err != nil {
		return nil, err
	}
	if !acquired {
		s.Metrics.Transition(BeginSubmit{}.Name(), "rejected")
		return nil, ErrSubmissionInFlight
	}
	persistCtx := context.WithoutCancel(ctx)
	defer func() {
		if err := s.Store.ReleaseSubmitLock(persistCtx, sessionID); err != nil {
			s.Logger.Warn("Failed to release submit lock", zap.String("sessionId", sessionID), zap.Error(err))
		}
	}()

	session, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	// Holding the lock means no submission is live; a stored flag is left over from an aborted one.
	state := session.State
	state.Submitting = false

	begun, err := Transition(state, BeginSubmit{}, s.Rules)
	if err != nil {
		s.Metrics.Transition(BeginSubmit{}.Name(), "rejected")
		return nil, err
	}
	session.State = begun
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	quote := Summary(begun, s.Rules).Quote

	subCtx := ctx
	if s.SubmitTimeout > 0 {
		var cancel context.CancelFunc
		subCtx, cancel = context.WithTimeout(ctx, s.SubmitTimeout)
		defer cancel()
	}
	conf, subErr := checkConfirmation(s.Submitter.SubmitBooking(subCtx, begun.Draft))

	if subErr != nil {
		if ctx.Err() != nil {
			session.State.Submitting = false
			s.save(persistCtx, session)
			s.Metrics.Submission("cancelled")
			return nil, ctx.Err()
		}
		if errors.Is(subErr, context.DeadlineExceeded) {
			subErr = &reservation.SubmissionError{Kind: reservation.KindNetwork, Err: subErr}
		}
		failed, _ := Transition(begun, SubmitFailed{Err: subErr}, s.Rules)
		session.State = failed
		session.UpdatedAt = s.Rules.Now().UTC()
		s.save(persistCtx, session)
		s.Metrics.Submission(submissionOutcome(subErr))
		s.Logger.Warn("Booking submission failed", zap.String("sessionId", sessionID), zap.Error(subErr))
		return session, subErr
	}

	confirmed := *conf
	if quote != nil {
		confirmed.Quote = *quote
	}
	done, err := Transition(begun, SubmitSucceeded{Confirmation: confirmed}, s.Rules)
	if err != nil {
		return nil, err
	}
	session.State = done
	session.UpdatedAt = s.Rules.Now().UTC()
	// The booking is placed even if the stored copy cannot be updated.
	s.save(persistCtx, session)
	s.Metrics.Submission("confirmed")
	s.Logger.Info("Booking confirmed",
		zap.String("sessionId", sessionID),
		zap.String("confirmationId", confirmed.ConfirmationID))

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(persistCtx, confirmed); err != nil {
			s.Logger.Warn("Failed to schedule reminder", zap.String("confirmationId", confirmed.ConfirmationID), zap.Error(err))
		}
	}
	return session, nil
}

func (s *DefaultBookingSessionService) save(ctx context.Context, session *models.BookingSession) {
	if err := s.Store.Save(ctx, session); err != nil {
		s.Logger.Error("Failed to persist booking session", zap.String("sessionId", session.SessionID), zap.Error(err))
	}
}
