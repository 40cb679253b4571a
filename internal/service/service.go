package service

import (
	"confera/internal/messaging"
	"confera/internal/repository"
)

type Services struct {
	Events               *EventService
	Tracks               *TrackService
	Sessions             *SessionService
	Registrations        *RegistrationService
	SessionRegistrations *SessionRegistrationService
}

func NewServices(repos *repository.Repositories, natsClient *messaging.NATSClient) *Services {
	return &Services{
		Events:               NewEventService(repos.Events, natsClient),
		Tracks:               NewTrackService(repos.Tracks, repos.Events, repos.Registrations),
		Sessions:             NewSessionService(repos.Sessions, repos.Tracks, repos.Events, repos.Users, repos.Registrations),
		Registrations:        NewRegistrationService(repos.Registrations, repos.Events, natsClient),
		SessionRegistrations: NewSessionRegistrationService(repos.SessionRegistrations, natsClient),
	}
}
