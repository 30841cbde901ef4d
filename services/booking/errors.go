package booking

import (
	"errors"
	"fmt"
	"strings"

	"washbook/models"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrStepNotReachable   = errors.New("step not reachable")
	ErrSubmitRequired     = errors.New("confirm step only advances by submitting")
	ErrBookingFinalized   = errors.New("booking already confirmed")
	ErrSubmissionInFlight = errors.New("submission already in progress")
	ErrUnknownField       = errors.New("unknown booking field")
	ErrSessionNotFound    = errors.New("booking session not found or expired")
	ErrSessionChanged     = errors.New("booking session changed by another request")
)

// ValidationError lists the draft fields that keep a step from advancing.
type ValidationError struct {
	Step    models.Step
	Fields  []string
	Reasons map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if r := e.Reasons[f]; r != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", f, r))
		} else {
			parts = append(parts, f)
		}
	}
	if !e.Step.Valid() {
		return "invalid " + strings.Join(parts, ", ")
	}
	return fmt.Sprintf("%s step: invalid %s", e.Step, strings.Join(parts, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) add(field, reason string) {
	if e.Reasons == nil {
		e.Reasons = make(map[string]string)
	}
	e.Fields = append(e.Fields, field)
	e.Reasons[field] = reason
}

// errOrNil avoids returning a typed nil.
func (e *ValidationError) errOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
