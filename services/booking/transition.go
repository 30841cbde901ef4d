package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"washbook/models"
	"washbook/services/reservation"
)

// Transition applies ev to s. It never mutates s; on error the returned state equals s.
func Transition(s models.BookingState, ev Event, r Rules) (models.BookingState, error) {
	switch e := ev.(type) {
	case Next:
		return next(s, r)
	case Prev:
		return prev(s)
	case JumpTo:
		return jumpTo(s, e.Step)
	case BeginSubmit:
		return beginSubmit(s, r)
	case SubmitSucceeded:
		return submitSucceeded(s, e.Confirmation)
	case SubmitFailed:
		return submitFailed(s, e.Err)
	case Edit:
		return edit(s, e, r)
	default:
		return s, fmt.Errorf("unsupported event %T", ev)
	}
}

// navigable rejects moves out of a finished or in-flight wizard.
func navigable(s models.BookingState) error {
	if s.Step == models.StepSuccess {
		return ErrBookingFinalized
	}
	if s.Submitting {
		return ErrSubmissionInFlight
	}
	return nil
}

func next(s models.BookingState, r Rules) (models.BookingState, error) {
	if err := navigable(s); err != nil {
		return s, err
	}
	if s.Step == models.StepConfirm {
		return s, ErrSubmitRequired
	}
	if err := ValidateStep(s.Step, s.Draft, r); err != nil {
		return s, err
	}
	out := clone(s)
	out.Step++
	out.LastError = ""
	return out, nil
}

func prev(s models.BookingState) (models.BookingState, error) {
	if err := navigable(s); err != nil {
		return s, err
	}
	if s.Step <= models.StepService {
		return s, ErrStepNotReachable
	}
	out := clone(s)
	out.Step--
	return out, nil
}

func jumpTo(s models.BookingState, target models.Step) (models.BookingState, error) {
	if err := navigable(s); err != nil {
		return s, err
	}
	if target < models.StepService || target > s.Step {
		return s, ErrStepNotReachable
	}
	out := clone(s)
	out.Step = target
	return out, nil
}

func beginSubmit(s models.BookingState, r Rules) (models.BookingState, error) {
	if err := navigable(s); err != nil {
		return s, err
	}
	if s.Step != models.StepConfirm {
		return s, ErrStepNotReachable
	}
	if err := validateThrough(models.StepConfirm, s.Draft, r); err != nil {
		return s, err
	}
	out := clone(s)
	out.Submitting = true
	out.LastError = ""
	return out, nil
}

func submitSucceeded(s models.BookingState, conf models.BookingConfirmation) (models.BookingState, error) {
	if !s.Submitting || s.Step != models.StepConfirm {
		return s, ErrStepNotReachable
	}
	out := clone(s)
	out.Step = models.StepSuccess
	out.Submitting = false
	out.Confirmation = &conf
	out.LastError = ""
	return out, nil
}

func submitFailed(s models.BookingState, cause error) (models.BookingState, error) {
	if !s.Submitting {
		return s, ErrStepNotReachable
	}
	out := clone(s)
	out.Submitting = false
	if cause != nil {
		out.LastError = cause.Error()
	}
	if errors.Is(cause, reservation.ErrConflict) {
		out.Step = models.StepSchedule
		out.Draft.Time = ""
	}
	return out, nil
}

func edit(s models.BookingState, e Edit, r Rules) (models.BookingState, error) {
	if err := navigable(s); err != nil {
		return s, err
	}
	out := clone(s)
	d := &out.Draft

	if e.Field == FieldAddons {
		ids, ok := e.Value.([]string)
		if !ok {
			return s, fmt.Errorf("%w: %s expects a list", ErrUnknownField, e.Field)
		}
		addons, err := normalizeAddons(ids, s.Step, r)
		if err != nil {
			return s, err
		}
		d.Addons = addons
		return out, nil
	}
	if e.Field == FieldMembership {
		switch v := e.Value.(type) {
		case bool:
			d.Membership = v
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return s, &ValidationError{Step: s.Step, Fields: []string{FieldMembership}, Reasons: map[string]string{FieldMembership: "must be true or false"}}
			}
			d.Membership = b
		default:
			return s, fmt.Errorf("%w: %s expects a boolean", ErrUnknownField, e.Field)
		}
		return out, nil
	}

	value, ok := e.Value.(string)
	if !ok {
		return s, fmt.Errorf("%w: %s expects a string", ErrUnknownField, e.Field)
	}

	switch e.Field {
	case FieldService:
		id := value
		if svc, found := r.Catalogue.ServiceByID(value); found {
			id = svc.ID
		}
		if id != d.Service {
			d.Time = ""
		}
		d.Service = id
	case FieldLocation:
		if strings.TrimSpace(value) == "" {
			d.Location = nil
			break
		}
		loc, found := r.Catalogue.LocationByID(value)
		if !found {
			return s, &ValidationError{Step: s.Step, Fields: []string{FieldLocation}, Reasons: map[string]string{FieldLocation: "unknown location"}}
		}
		d.Location = &loc
	case FieldDate:
		d.Date = strings.TrimSpace(value)
	case FieldTime:
		d.Time = strings.TrimSpace(value)
	case FieldVehicleType:
		d.VehicleType = value
	case FieldFirstName:
		d.FirstName = value
	case FieldLastName:
		d.LastName = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		d.Phone = value
	case FieldSpecialRequests:
		d.SpecialRequests = value
	case FieldVehicleSize:
		d.VehicleSize = strings.ToLower(strings.TrimSpace(value))
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownField, e.Field)
	}
	return out, nil
}

func normalizeAddons(ids []string, step models.Step, r Rules) ([]string, error) {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		if _, ok := r.Catalogue.AddonByID(id); !ok {
			return nil, &ValidationError{Step: step, Fields: []string{FieldAddons}, Reasons: map[string]string{FieldAddons: fmt.Sprintf("unknown addon %q", id)}}
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}

// clone copies s deeply enough that edits to the result never reach s.
func clone(s models.BookingState) models.BookingState {
	out := s
	if s.Draft.Location != nil {
		loc := *s.Draft.Location
		out.Draft.Location = &loc
	}
	if s.Draft.Addons != nil {
		out.Draft.Addons = append([]string(nil), s.Draft.Addons...)
	}
	if s.Confirmation != nil {
		conf := *s.Confirmation
		out.Confirmation = &conf
	}
	return out
}
