// Package loan holds loan application identifiers, status rules and the
// amortization schedule.
package loan

import (
	"errors"
	"fmt"
)

// Status is the lifecycle state of a loan application.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

var (
	ErrInvalidStatus     = errors.New("invalid loan status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Statuses lists every known status.
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusActive, StatusCompleted}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus converts a string to a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

var strictTransitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusActive},
	StatusActive:   {StatusCompleted},
}

// ValidateTransition checks a status change. In permissive mode any known
// status may follow any other; strict mode only allows
// pending→approved|rejected, approved→active and active→completed.
func ValidateTransition(from, to Status, strict bool) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	if !strict {
		return nil
	}
	for _, next := range strictTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
