// Package domain holds the validation error taxonomy and the pure
// capacity/eligibility checks that gate every registration decision.
package domain

import "errors"

// Kind identifies a validation failure for the client-error response.
type Kind string

const (
	KindInvalidDateRange          Kind = "invalid_date_range"
	KindPastStartDate             Kind = "past_start_date"
	KindDuplicateTrackName        Kind = "duplicate_track_name"
	KindOutOfEventBounds          Kind = "out_of_event_bounds"
	KindSchedulingConflict        Kind = "scheduling_conflict"
	KindDuplicateRegistration     Kind = "duplicate_registration"
	KindEventAtCapacity           Kind = "event_at_capacity"
	KindEventRegistrationRequired Kind = "event_registration_required"
	KindSessionAtCapacity         Kind = "session_at_capacity"
)

// Error is a validation failure surfaced to the client as a 400.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrInvalidDateRange          = &Error{KindInvalidDateRange, "end date must be after start date"}
	ErrPastStartDate             = &Error{KindPastStartDate, "start date cannot be in the past"}
	ErrDuplicateTrackName        = &Error{KindDuplicateTrackName, "track name already exists for this event"}
	ErrOutOfEventBounds          = &Error{KindOutOfEventBounds, "session must be within event duration"}
	ErrSchedulingConflict        = &Error{KindSchedulingConflict, "session time conflicts with another session in the same track"}
	ErrDuplicateRegistration     = &Error{KindDuplicateRegistration, "already registered"}
	ErrEventAtCapacity           = &Error{KindEventAtCapacity, "event has reached maximum capacity"}
	ErrEventRegistrationRequired = &Error{KindEventRegistrationRequired, "must be registered for the event first"}
	ErrSessionAtCapacity         = &Error{KindSessionAtCapacity, "session has reached maximum capacity"}
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrForbidden is returned when the caller lacks the required role.
var ErrForbidden = errors.New("operation is forbidden for user")

// AsError extracts a *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
