package service

import (
	"context"
	"fmt"
	"time"

	"confera/internal/domain"
	"confera/internal/logger"
	"confera/internal/messaging"
	"confera/internal/models"
	"confera/internal/repository"
)

type RegistrationService struct {
	regRepo    *repository.RegistrationRepository
	eventRepo  *repository.EventRepository
	natsClient *messaging.NATSClient
}

func NewRegistrationService(regRepo *repository.RegistrationRepository, eventRepo *repository.EventRepository, natsClient *messaging.NATSClient) *RegistrationService {
	return &RegistrationService{
		regRepo:    regRepo,
		eventRepo:  eventRepo,
		natsClient: natsClient,
	}
}

// Create registers the caller for an event. The duplicate and
// capacity checks run inside the repository transaction; the result
// is always a pending registration awaiting organizer approval.
func (s *RegistrationService) Create(ctx context.Context, caller domain.Identity, eventID int64) (*models.Registration, error) {
	reg, err := s.regRepo.RegisterForEvent(ctx, eventID, caller.UserID)
	if err != nil {
		if _, ok := domain.AsError(err); ok || err == domain.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	s.publish(ctx, models.EventRegistrationCreated, models.RegistrationEvent{
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		AttendeeID:     reg.AttendeeID,
		Status:         reg.Status,
		Timestamp:      time.Now(),
	})

	return reg, nil
}

func (s *RegistrationService) List(ctx context.Context, caller domain.Identity, status string, eventID int64) ([]models.Registration, error) {
	regs, err := s.regRepo.List(ctx, caller, status, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}

// Get applies the visibility scope: out-of-scope registrations are
// reported as not found rather than forbidden.
func (s *RegistrationService) Get(ctx context.Context, caller domain.Identity, id int64) (*models.Registration, error) {
	reg, event, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	roles := domain.ResolveRoles(caller, event.OrganizerID, reg.AttendeeID)
	if !roles.CanView() {
		return nil, domain.ErrNotFound
	}

	return reg, nil
}

func (s *RegistrationService) UpdateNotes(ctx context.Context, caller domain.Identity, id int64, notes string) (*models.Registration, error) {
	reg, event, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	roles := domain.ResolveRoles(caller, event.OrganizerID, reg.AttendeeID)
	if !roles.CanView() {
		return nil, domain.ErrNotFound
	}

	reg, err = s.regRepo.UpdateNotes(ctx, id, notes)
	if err != nil {
		return nil, fmt.Errorf("failed to update registration: %w", err)
	}

	return reg, nil
}

// Approve transitions pending -> confirmed. Organizer only; the
// capacity check runs under the event row lock in the repository.
func (s *RegistrationService) Approve(ctx context.Context, caller domain.Identity, id int64) (*models.Registration, error) {
	reg, event, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	roles := domain.ResolveRoles(caller, event.OrganizerID, reg.AttendeeID)
	if !roles.Organizer {
		return nil, domain.ErrForbidden
	}

	reg, err = s.regRepo.Approve(ctx, reg.ID, reg.EventID)
	if err != nil {
		if _, ok := domain.AsError(err); ok || err == domain.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to approve registration: %w", err)
	}

	s.publish(ctx, models.EventRegistrationApproved, models.RegistrationEvent{
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		AttendeeID:     reg.AttendeeID,
		Status:         reg.Status,
		Timestamp:      time.Now(),
	})

	return reg, nil
}

// Cancel sets status to cancelled. Attendee or organizer; cancelling
// an already-cancelled registration succeeds and stays cancelled.
func (s *RegistrationService) Cancel(ctx context.Context, caller domain.Identity, id int64) (*models.Registration, error) {
	reg, event, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	roles := domain.ResolveRoles(caller, event.OrganizerID, reg.AttendeeID)
	if !roles.CanCancel() {
		return nil, domain.ErrForbidden
	}

	reg, err = s.regRepo.Cancel(ctx, reg.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel registration: %w", err)
	}

	s.publish(ctx, models.EventRegistrationCancelled, models.RegistrationEvent{
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		AttendeeID:     reg.AttendeeID,
		Status:         reg.Status,
		Timestamp:      time.Now(),
	})

	return reg, nil
}

func (s *RegistrationService) load(ctx context.Context, id int64) (*models.Registration, *models.Event, error) {
	reg, err := s.regRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get registration: %w", err)
	}
	if reg == nil {
		return nil, nil, domain.ErrNotFound
	}

	event, err := s.eventRepo.GetByID(ctx, reg.EventID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, nil, domain.ErrNotFound
	}

	return reg, event, nil
}

func (s *RegistrationService) publish(ctx context.Context, subject string, data interface{}) {
	if err := s.natsClient.Publish(subject, data); err != nil {
		// Log error but don't fail the operation
		logger.WithContext(ctx).Error("Failed to publish registration event",
			"error", err,
			"event_type", subject)
	}
}
