package booking

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"washbook/models"
)

var testNow = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

func testRules() Rules {
	r := DefaultRules()
	r.Availability = AllAvailable{}
	r.Clock = func() time.Time { return testNow }
	return r
}

func completeDraft(r Rules) models.BookingDraft {
	loc, _ := r.Catalogue.LocationByID("los-angeles")
	return models.BookingDraft{
		Service:     "premium",
		Location:    &loc,
		Date:        "2026-10-17",
		Time:        "9:30 AM",
		VehicleType: "sedan",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		Phone:       "555-0100",
	}
}

func stateAt(step models.Step, r Rules) models.BookingState {
	return models.BookingState{Step: step, Draft: completeDraft(r)}
}

// fakeSubmitter counts calls and can hold them until released.
type fakeSubmitter struct {
	calls   int32
	started chan struct{}
	release chan struct{}
	err     error
	empty   bool // accept without returning a confirmation
	mu      sync.Mutex
	drafts  []models.BookingDraft
}

func newFakeSubmitter() *fakeSubmitter {
	return &fakeSubmitter{started: make(chan struct{}, 10)}
}

func (f *fakeSubmitter) SubmitBooking(ctx context.Context, draft models.BookingDraft) (*models.BookingConfirmation, error) {
	atomic.AddInt32(&f.calls, 1)
	f.mu.Lock()
	f.drafts = append(f.drafts, draft)
	f.mu.Unlock()
	f.started <- struct{}{}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.empty {
		return nil, nil
	}
	return &models.BookingConfirmation{
		ConfirmationID: "WB-TEST0001",
		Service:        draft.Service,
		Location:       *draft.Location,
		Date:           draft.Date,
		Time:           draft.Time,
		FirstName:      draft.FirstName,
		LastName:       draft.LastName,
		Email:          draft.Email,
		Phone:          draft.Phone,
		VehicleType:    draft.VehicleType,
		CreatedAt:      testNow,
	}, nil
}

func (f *fakeSubmitter) Calls() int {
	return int(atomic.LoadInt32(&f.calls))
}
