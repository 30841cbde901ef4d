package location

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCatalogue means the resolver was handed no locations; startup refuses this.
	ErrEmptyCatalogue = errors.New("location catalogue is empty")

	ErrPermissionDenied    = errors.New("geolocation permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrTimeout             = errors.New("geolocation timed out")
)

// Failure codes as reported by browser geolocation.
const (
	CodePermissionDenied    = 1
	CodePositionUnavailable = 2
	CodeTimeout             = 3
)

// GeolocationError carries a failure code and an optional message from the position source.
type GeolocationError struct {
	Code    int
	Message string
}

func (e *GeolocationError) Error() string {
	if e.Message == "" {
		return e.sentinel().Error()
	}
	return fmt.Sprintf("%s: %s", e.sentinel(), e.Message)
}

func (e *GeolocationError) Unwrap() error {
	return e.sentinel()
}

func (e *GeolocationError) sentinel() error {
	switch e.Code {
	case CodePermissionDenied:
		return ErrPermissionDenied
	case CodeTimeout:
		return ErrTimeout
	default:
		return ErrPositionUnavailable
	}
}

// NewGeolocationError builds a GeolocationError for the given code.
func NewGeolocationError(code int, message string) *GeolocationError {
	return &GeolocationError{Code: code, Message: message}
}

// IsGeolocationFailure reports whether err is one of the recoverable acquisition failures.
func IsGeolocationFailure(err error) bool {
	return errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrPositionUnavailable) ||
		errors.Is(err, ErrTimeout)
}
