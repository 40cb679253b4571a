package service

import (
	"context"
	"fmt"

	"confera/internal/domain"
	"confera/internal/models"
	"confera/internal/repository"
)

type TrackService struct {
	trackRepo *repository.TrackRepository
	eventRepo *repository.EventRepository
	regRepo   *repository.RegistrationRepository
}

func NewTrackService(trackRepo *repository.TrackRepository, eventRepo *repository.EventRepository, regRepo *repository.RegistrationRepository) *TrackService {
	return &TrackService{
		trackRepo: trackRepo,
		eventRepo: eventRepo,
		regRepo:   regRepo,
	}
}

// canViewSchedule gates track/session reads: staff, the event
// organizer and attendees holding a confirmed registration may see
// the schedule.
func (s *TrackService) canViewSchedule(ctx context.Context, caller domain.Identity, event *models.Event) (bool, error) {
	roles := domain.ResolveRoles(caller, event.OrganizerID, 0)
	if roles.Staff || roles.Organizer {
		return true, nil
	}
	return s.regRepo.HasConfirmed(ctx, event.ID, caller.UserID)
}

func (s *TrackService) Create(ctx context.Context, caller domain.Identity, eventID int64, req *models.CreateTrackRequest) (*models.Track, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}

	roles := domain.ResolveRoles(caller, event.OrganizerID, 0)
	if !roles.CanMutate() {
		return nil, domain.ErrForbidden
	}

	taken, err := s.trackRepo.NameExists(ctx, eventID, req.Name, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check track name: %w", err)
	}
	if taken {
		return nil, domain.ErrDuplicateTrackName
	}

	track := &models.Track{
		EventID:     eventID,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.trackRepo.Create(ctx, track); err != nil {
		return nil, fmt.Errorf("failed to create track: %w", err)
	}

	return track, nil
}

func (s *TrackService) ListByEvent(ctx context.Context, caller domain.Identity, eventID int64) ([]models.Track, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}

	ok, err := s.canViewSchedule(ctx, caller, event)
	if err != nil {
		return nil, fmt.Errorf("failed to check visibility: %w", err)
	}
	if !ok {
		return nil, domain.ErrForbidden
	}

	return s.trackRepo.ListByEvent(ctx, eventID)
}

func (s *TrackService) Get(ctx context.Context, caller domain.Identity, id int64) (*models.Track, error) {
	track, event, err := s.load(ctx, id)
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

	return track, nil
}

func (s *TrackService) Update(ctx context.Context, caller domain.Identity, id int64, req *models.UpdateTrackRequest) (*models.Track, error) {
	track, event, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	roles := domain.ResolveRoles(caller, event.OrganizerID, 0)
	if !roles.CanMutate() {
		return nil, domain.ErrForbidden
	}

	taken, err := s.trackRepo.NameExists(ctx, track.EventID, req.Name, track.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check track name: %w", err)
	}
	if taken {
		return nil, domain.ErrDuplicateTrackName
	}

	track.Name = req.Name
	track.Description = req.Description

	if err := s.trackRepo.Update(ctx, track); err != nil {
		return nil, fmt.Errorf("failed to update track: %w", err)
	}

	return track, nil
}

// Delete cascades to the track's sessions and their registrations.
func (s *TrackService) Delete(ctx context.Context, caller domain.Identity, id int64) error {
	_, event, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	roles := domain.ResolveRoles(caller, event.OrganizerID, 0)
	if !roles.CanMutate() {
		return domain.ErrForbidden
	}

	if err := s.trackRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete track: %w", err)
	}

	return nil
}

func (s *TrackService) load(ctx context.Context, id int64) (*models.Track, *models.Event, error) {
	track, err := s.trackRepo.GetByID(ctx, id)
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
