package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate is returned when a date does not strictly match
	// YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")

	// ErrInvalidTime is returned when a slot does not parse as HH:MM.
	ErrInvalidTime = errors.New("invalid time format, use HH:MM")

	// ErrMissingFields is returned when a booking request lacks any of
	// the required fields.
	ErrMissingFields = errors.New("missing required fields: firstName, lastName, phone, appointmentDate, appointmentTime")
)

// UpstreamError wraps a failed CRM read or write. Writes already issued
// before the failure are not undone.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func upstream(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}
