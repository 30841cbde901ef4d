package reservation

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork  = errors.New("booking API unreachable")
	ErrRejected = errors.New("booking rejected by API")
	ErrConflict = errors.New("requested slot is no longer available")
)

// Kind classifies a failed submission.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindRejected
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRejected:
		return "rejected"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// SubmissionError is returned by a Submitter when a booking was not accepted.
type SubmissionError struct {
	Kind    Kind
	Status  int    // HTTP status when the API answered
	Message string // message from the API, if any
	Err     error  // underlying transport error
}

func (e *SubmissionError) Error() string {
	msg := e.sentinel().Error()
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func (e *SubmissionError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *SubmissionError) sentinel() error {
	switch e.Kind {
	case KindConflict:
		return ErrConflict
	case KindRejected:
		return ErrRejected
	default:
		return ErrNetwork
	}
}
