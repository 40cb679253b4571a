package models

import (
	"time"
)

// Registration statuses
const (
	RegistrationPending   = "pending"
	RegistrationConfirmed = "confirmed"
	RegistrationCancelled = "cancelled"
)

// User represents a user in the system
type User struct {
	UserID       int64     `json:"user_id" db:"user_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	Surname      string    `json:"surname" db:"surname"`
	IsStaff      bool      `json:"is_staff" db:"is_staff"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
}

// Event represents an event owned by its organizer
type Event struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	StartDate   time.Time `json:"start_date" db:"start_date"`
	EndDate     time.Time `json:"end_date" db:"end_date"`
	Venue       string    `json:"venue" db:"venue"`
	Capacity    int64     `json:"capacity" db:"capacity"`
	OrganizerID int64     `json:"organizer_id" db:"organizer_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Track groups sessions within one event; name is unique per event
type Track struct {
	ID          int64  `json:"id" db:"id"`
	EventID     int64  `json:"event_id" db:"event_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

// Session is a scheduled slot inside a track. Capacity is optional:
// nil means unbounded. SpeakerID is nil when the speaker was removed.
type Session struct {
	ID          int64     `json:"id" db:"id"`
	TrackID     int64     `json:"track_id" db:"track_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	SpeakerID   *int64    `json:"speaker_id" db:"speaker_id"`
	StartTime   time.Time `json:"start_time" db:"start_time"`
	EndTime     time.Time `json:"end_time" db:"end_time"`
	Capacity    *int64    `json:"capacity" db:"capacity"`
}

// Registration links an attendee to an event. At most one row per
// (event, attendee) pair regardless of status; never hard-deleted.
type Registration struct {
	ID               int64     `json:"id" db:"id"`
	EventID          int64     `json:"event_id" db:"event_id"`
	AttendeeID       int64     `json:"attendee_id" db:"attendee_id"`
	Status           string    `json:"status" db:"status"`
	RegistrationDate time.Time `json:"registration_date" db:"registration_date"`
	Notes            string    `json:"notes" db:"notes"`
}

// SessionRegistration links an attendee to a session. Hard-deleted on cancel.
type SessionRegistration struct {
	ID               int64     `json:"id" db:"id"`
	SessionID        int64     `json:"session_id" db:"session_id"`
	AttendeeID       int64     `json:"attendee_id" db:"attendee_id"`
	RegistrationDate time.Time `json:"registration_date" db:"registration_date"`
}
