package booking

import (
	"context"
	"sync"

	"washbook/models"
	"washbook/services/reservation"
	"washbook/utils"

	"go.uber.org/zap"
)

// Wizard owns one booking draft and drives it through the five steps.
// It is safe for concurrent use; only one submission can be in flight.
type Wizard struct {
	mu        sync.Mutex
	state     models.BookingState
	rules     Rules
	submitter reservation.Submitter
	logger    *zap.Logger
	metrics   *utils.BookingMetrics
}

func NewWizard(rules Rules, submitter reservation.Submitter, logger *zap.Logger, metrics *utils.BookingMetrics) *Wizard {
	return &Wizard{
		state:     models.NewBookingState(),
		rules:     rules,
		submitter: submitter,
		logger:    logger,
		metrics:   metrics,
	}
}

// State returns a copy of the current state.
func (w *Wizard) State() models.BookingState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return clone(w.state)
}

func (w *Wizard) apply(ev Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.applyLocked(ev)
}

func (w *Wizard) applyLocked(ev Event) error {
	next, err := Transition(w.state, ev, w.rules)
	if err != nil {
		w.metrics.Transition(ev.Name(), "rejected")
		w.logger.Debug("Booking transition rejected",
			zap.String("event", ev.Name()), zap.Stringer("step", w.state.Step), zap.Error(err))
		return err
	}
	w.metrics.Transition(ev.Name(), "ok")
	w.state = next
	return nil
}

func (w *Wizard) Next() error {
	return w.apply(Next{})
}

func (w *Wizard) Prev() error {
	return w.apply(Prev{})
}

func (w *Wizard) JumpTo(step models.Step) error {
	return w.apply(JumpTo{Step: step})
}

// Set edits one draft field.
func (w *Wizard) Set(field string, value any) error {
	return w.apply(Edit{Field: field, Value: value})
}

func (w *Wizard) Summary() models.BookingSummary {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Summary(w.state, w.rules)
}

type submitResult struct {
	conf *models.BookingConfirmation
	err  error
}

// Submit sends the draft to the reservation API. A second call while one is in
// flight returns ErrSubmissionInFlight without reaching the API. If ctx ends
// first, the eventual API result is discarded and ctx.Err() is returned.
func (w *Wizard) Submit(ctx context.Context) (*models.BookingConfirmation, error) {
	w.mu.Lock()
	if err := w.applyLocked(BeginSubmit{}); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	draft := clone(w.state).Draft
	quote := Summary(w.state, w.rules).Quote
	w.mu.Unlock()

	done := make(chan submitResult, 1)
	go func() {
		conf, err := checkConfirmation(w.submitter.SubmitBooking(ctx, draft))
		done <- submitResult{conf: conf, err: err}
	}()

	select {
	case <-ctx.Done():
		w.mu.Lock()
		w.state.Submitting = false
		w.mu.Unlock()
		w.metrics.Submission("cancelled")
		w.logger.Info("Booking submission abandoned", zap.Error(ctx.Err()))
		return nil, ctx.Err()
	case res := <-done:
		w.mu.Lock()
		defer w.mu.Unlock()
		if res.err != nil {
			w.metrics.Submission(submissionOutcome(res.err))
			_ = w.applyLocked(SubmitFailed{Err: res.err})
			return nil, res.err
		}
		conf := *res.conf
		if quote != nil {
			conf.Quote = *quote
		}
		if err := w.applyLocked(SubmitSucceeded{Confirmation: conf}); err != nil {
			return nil, err
		}
		w.metrics.Submission("confirmed")
		out := *w.state.Confirmation
		return &out, nil
	}
}
