package models

import (
	"time"
)

// CreateEventRequest - payload for creating an event
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	Venue       string    `json:"venue" binding:"required"`
	Capacity    int64     `json:"capacity" binding:"required,gt=0"`
}

// UpdateEventRequest - payload for updating an event (organizer only)
type UpdateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	Venue       string    `json:"venue" binding:"required"`
	Capacity    int64     `json:"capacity" binding:"required,gt=0"`
}

// EventResponse - event with its computed confirmed-registration count.
// RegistrationCount is always derived from a live count query, never stored.
type EventResponse struct {
	Event
	RegistrationCount int64 `json:"registration_count"`
}

// ListEventsResponse - list of events
type ListEventsResponse []EventResponse

// CreateTrackRequest - payload for creating a track under an event
type CreateTrackRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateTrackRequest - payload for updating a track
type UpdateTrackRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateSessionRequest - payload for creating a session under a track
type CreateSessionRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	SpeakerID   *int64    `json:"speaker_id"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Capacity    *int64    `json:"capacity" binding:"omitempty,gt=0"`
}

// UpdateSessionRequest - payload for updating a session
type UpdateSessionRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	SpeakerID   *int64    `json:"speaker_id"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Capacity    *int64    `json:"capacity" binding:"omitempty,gt=0"`
}

// CreateRegistrationRequest - payload for registering for an event
type CreateRegistrationRequest struct {
	EventID int64 `json:"event_id" binding:"required"`
}

// UpdateRegistrationRequest - payload for updating registration notes
type UpdateRegistrationRequest struct {
	Notes string `json:"notes"`
}

// CreateSessionRegistrationRequest - payload for registering for a session
type CreateSessionRegistrationRequest struct {
	SessionID int64 `json:"session_id" binding:"required"`
}
