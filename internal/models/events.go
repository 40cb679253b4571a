package models

import "time"

// NATS Event Types
const (
	EventEventCreated           = "event.created"
	EventEventDeleted           = "event.deleted"
	EventRegistrationCreated    = "registration.created"
	EventRegistrationApproved   = "registration.approved"
	EventRegistrationCancelled  = "registration.cancelled"
	EventSessionSignupCreated   = "session_registration.created"
	EventSessionSignupCancelled = "session_registration.cancelled"
)

// EventLifecycleEvent covers event.created and event.deleted
type EventLifecycleEvent struct {
	EventID     int64     `json:"event_id"`
	OrganizerID int64     `json:"organizer_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// RegistrationEvent covers registration created/approved/cancelled
type RegistrationEvent struct {
	RegistrationID int64     `json:"registration_id"`
	EventID        int64     `json:"event_id"`
	AttendeeID     int64     `json:"attendee_id"`
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}

// SessionRegistrationEvent covers session signup created/cancelled
type SessionRegistrationEvent struct {
	SessionRegistrationID int64     `json:"session_registration_id"`
	SessionID             int64     `json:"session_id"`
	AttendeeID            int64     `json:"attendee_id"`
	Timestamp             time.Time `json:"timestamp"`
}
