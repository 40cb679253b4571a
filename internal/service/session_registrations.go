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

type SessionRegistrationService struct {
	srRepo     *repository.SessionRegistrationRepository
	natsClient *messaging.NATSClient
}

func NewSessionRegistrationService(srRepo *repository.SessionRegistrationRepository, natsClient *messaging.NATSClient) *SessionRegistrationService {
	return &SessionRegistrationService{
		srRepo:     srRepo,
		natsClient: natsClient,
	}
}

// Create registers the caller for a session. Eligibility (confirmed
// event registration), capacity and duplicate checks run inside the
// repository transaction in that order.
func (s *SessionRegistrationService) Create(ctx context.Context, caller domain.Identity, sessionID int64) (*models.SessionRegistration, error) {
	sr, err := s.srRepo.Create(ctx, sessionID, caller.UserID)
	if err != nil {
		if _, ok := domain.AsError(err); ok || err == domain.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create session registration: %w", err)
	}

	s.publish(ctx, models.EventSessionSignupCreated, models.SessionRegistrationEvent{
		SessionRegistrationID: sr.ID,
		SessionID:             sr.SessionID,
		AttendeeID:            sr.AttendeeID,
		Timestamp:             time.Now(),
	})

	return sr, nil
}

func (s *SessionRegistrationService) List(ctx context.Context, caller domain.Identity) ([]models.SessionRegistration, error) {
	srs, err := s.srRepo.List(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("failed to list session registrations: %w", err)
	}
	return srs, nil
}

// Get applies the visibility scope through session -> track -> event.
func (s *SessionRegistrationService) Get(ctx context.Context, caller domain.Identity, id int64) (*models.SessionRegistration, error) {
	sr, err := s.srRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session registration: %w", err)
	}
	if sr == nil {
		return nil, domain.ErrNotFound
	}

	organizerID, err := s.srRepo.OrganizerOf(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve organizer: %w", err)
	}

	roles := domain.ResolveRoles(caller, organizerID, sr.AttendeeID)
	if !roles.CanView() {
		return nil, domain.ErrNotFound
	}

	return sr, nil
}

// Cancel hard-deletes the session registration; there is no cancelled
// state for session signups.
func (s *SessionRegistrationService) Cancel(ctx context.Context, caller domain.Identity, id int64) error {
	sr, err := s.srRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get session registration: %w", err)
	}
	if sr == nil {
		return domain.ErrNotFound
	}

	organizerID, err := s.srRepo.OrganizerOf(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to resolve organizer: %w", err)
	}

	roles := domain.ResolveRoles(caller, organizerID, sr.AttendeeID)
	if !roles.CanCancel() {
		return domain.ErrForbidden
	}

	if err := s.srRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session registration: %w", err)
	}

	s.publish(ctx, models.EventSessionSignupCancelled, models.SessionRegistrationEvent{
		SessionRegistrationID: sr.ID,
		SessionID:             sr.SessionID,
		AttendeeID:            sr.AttendeeID,
		Timestamp:             time.Now(),
	})

	return nil
}

func (s *SessionRegistrationService) publish(ctx context.Context, subject string, data interface{}) {
	if err := s.natsClient.Publish(subject, data); err != nil {
		// Log error but don't fail the operation
		logger.WithContext(ctx).Error("Failed to publish session registration event",
			"error", err,
			"event_type", subject)
	}
}
