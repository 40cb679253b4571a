package repository

import (
	"confera/internal/database"
)

type Repositories struct {
	Users                *UserRepository
	Events               *EventRepository
	Tracks               *TrackRepository
	Sessions             *SessionRepository
	Registrations        *RegistrationRepository
	SessionRegistrations *SessionRegistrationRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Users:                NewUserRepository(db),
		Events:               NewEventRepository(db),
		Tracks:               NewTrackRepository(db),
		Sessions:             NewSessionRepository(db),
		Registrations:        NewRegistrationRepository(db),
		SessionRegistrations: NewSessionRegistrationRepository(db),
	}
}
