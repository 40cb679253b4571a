package service

import (
	"context"
	"fmt"

	"confera/internal/domain"
	"confera/internal/models"
	"confera/internal/repository"
)

type SessionService struct {
	sessionRepo *repository.SessionRepository
	trackRepo   *repository.TrackRepository
	eventRepo   *repository.EventRepository
	userRepo    *repository.UserRepository
	regRepo     *repository.RegistrationRepository
}

func NewSessionService(sessionRepo *repository.SessionRepository, trackRepo *repository.TrackRepository, eventRepo *repository.EventRepository, userRepo *repository.UserRepository, regRepo *repository.RegistrationRepository) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		trackRepo:   trackRepo,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		regRepo:     regRepo,
	}
}

func (s *SessionService) Create(ctx context.Context, caller domain.Identity, trackID int64, req *models.CreateSessionRequest) (*models.Session, error) {
	track, event, err := s.loadTrack(ctx, trackID)
	if err != nil {
		return nil, err
	}

	roles := domain.ResolveRoles(caller, event.OrganizerID, 0)
	if !roles.CanMutate() {
		return nil, domain.ErrForbidden
	}

	if err := domain.ValidateSessionWindow(req.StartTime, req.EndTime, event.StartDate, event.EndDate); err != nil {
		return nil, err
	}

	if err := s.checkSpeaker(ctx, req.SpeakerID); err != nil {
		return nil, err
	}

	session := &models.Session{
		TrackID:     track.ID,
		Title:       req.Title,
		Description: req.Description,
		SpeakerID:   req.SpeakerID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Capacity:    req.Capacity,
	}

	// Conflict detection runs inside the repository transaction,
	// serialized on the track row.
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		if _, ok := domain.AsError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

func (s *SessionService) ListByTrack(ctx context.Context, caller domain.Identity, trackID int64) ([]models.Session, error) {
	_, event, err := s.loadTrack(ctx, trackID)
	if err != nil {
		return nil, err
	}

	ok, err := s.canViewSchedule(ctx, caller, event)
	if err != nil {
		return nil, fmt.Errorf("failed to check visibility: %w", err)
	}
	if !ok {
		return nil, domain.ErrForbidden
	}

	return s.sessionRepo.ListByTrack(ctx, trackID)
}

func (s *SessionService) Get(ctx context.Context, caller domain.Identity, id int64) (*models.Session, error) {
	session, _, event, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.canViewSchedule(ctx, caller, event)
	if err != nil {
		return nil, fmt.Errorf("failed to check visibility: %w", err)
	}
	if !ok {
		return nil, domain.ErrForbidden
	}

	return session, nil
}

func (s *SessionService) Update(ctx context.Context, caller domain.Identity, id int64, req *models.UpdateSessionRequest) (*models.Session, error) {
	session, _, event, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	roles := domain.ResolveRoles(caller, event.OrganizerID, 0)
	if !roles.CanMutate() {
		return nil, domain.ErrForbidden
	}

	if err := domain.ValidateSessionWindow(req.StartTime, req.EndTime, event.StartDate, event.EndDate); err != nil {
		return nil, err
	}

	if err := s.checkSpeaker(ctx, req.SpeakerID); err != nil {
		return nil, err
	}

	session.Title = req.Title
	session.Description = req.Description
	session.SpeakerID = req.SpeakerID
	session.StartTime = req.StartTime
	session.EndTime = req.EndTime
	session.Capacity = req.Capacity

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		if _, ok := domain.AsError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, nil
}

// Delete cascades to the session's registrations.
func (s *SessionService) Delete(ctx context.Context, caller domain.Identity, id int64) error {
	_, _, event, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	roles := domain.ResolveRoles(caller, event.OrganizerID, 0)
	if !roles.CanMutate() {
		return domain.ErrForbidden
	}

	if err := s.sessionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (s *SessionService) canViewSchedule(ctx context.Context, caller domain.Identity, event *models.Event) (bool, error) {
	roles := domain.ResolveRoles(caller, event.OrganizerID, 0)
	if roles.Staff || roles.Organizer {
		return true, nil
	}
	return s.regRepo.HasConfirmed(ctx, event.ID, caller.UserID)
}

// checkSpeaker verifies an assigned speaker resolves to a real user.
func (s *SessionService) checkSpeaker(ctx context.Context, speakerID *int64) error {
	if speakerID == nil {
		return nil
	}
	exists, err := s.userRepo.Exists(ctx, *speakerID)
	if err != nil {
		return fmt.Errorf("failed to check speaker: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return nil
}

func (s *SessionService) loadTrack(ctx context.Context, trackID int64) (*models.Track, *models.Event, error) {
	track, err := s.trackRepo.GetByID(ctx, trackID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get track: %w", err)
	}
	if track == nil {
		return nil, nil, domain.ErrNotFound
	}

	event, err := s.eventRepo.GetByID(ctx, track.EventID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, nil, domain.ErrNotFound
	}

	return track, event, nil
}

func (s *SessionService) load(ctx context.Context, id int64) (*models.Session, *models.Track, *models.Event, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, nil, nil, domain.ErrNotFound
	}

	track, event, err := s.loadTrack(ctx, session.TrackID)
	if err != nil {
		return nil, nil, nil, err
	}

	return session, track, event, nil
}
