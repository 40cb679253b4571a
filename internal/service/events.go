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

type EventService struct {
	eventRepo  *repository.EventRepository
	natsClient *messaging.NATSClient
}

func NewEventService(eventRepo *repository.EventRepository, natsClient *messaging.NATSClient) *EventService {
	return &EventService{
		eventRepo:  eventRepo,
		natsClient: natsClient,
	}
}

func (s *EventService) Create(ctx context.Context, caller domain.Identity, req *models.CreateEventRequest) (*models.EventResponse, error) {
	if err := domain.ValidateEventDates(req.StartDate, req.EndDate, time.Now()); err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Venue:       req.Venue,
		Capacity:    req.Capacity,
		OrganizerID: caller.UserID,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.publish(ctx, models.EventEventCreated, models.EventLifecycleEvent{
		EventID:     event.ID,
		OrganizerID: event.OrganizerID,
		Timestamp:   time.Now(),
	})

	return &models.EventResponse{Event: *event}, nil
}

// List is world-readable for any authenticated caller.
func (s *EventService) List(ctx context.Context, query, venue, date string, page, pageSize int) (models.ListEventsResponse, error) {
	events, err := s.eventRepo.List(ctx, query, venue, date, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	result := make(models.ListEventsResponse, len(events))
	for i, event := range events {
		count, err := s.eventRepo.CountConfirmed(ctx, event.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count registrations: %w", err)
		}
		result[i] = models.EventResponse{Event: event, RegistrationCount: count}
	}

	return result, nil
}

func (s *EventService) Get(ctx context.Context, id int64) (*models.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}

	count, err := s.eventRepo.CountConfirmed(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}

	return &models.EventResponse{Event: *event, RegistrationCount: count}, nil
}

func (s *EventService) Update(ctx context.Context, caller domain.Identity, id int64, req *models.UpdateEventRequest) (*models.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
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

	// The past-start check applies at validation time only: keeping an
	// unchanged start date on an already-started event is allowed.
	now := time.Now()
	if req.StartDate.Equal(event.StartDate) {
		now = req.StartDate
	}
	if err := domain.ValidateEventDates(req.StartDate, req.EndDate, now); err != nil {
		return nil, err
	}

	event.Title = req.Title
	event.Description = req.Description
	event.StartDate = req.StartDate
	event.EndDate = req.EndDate
	event.Venue = req.Venue
	event.Capacity = req.Capacity

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	count, err := s.eventRepo.CountConfirmed(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}

	return &models.EventResponse{Event: *event, RegistrationCount: count}, nil
}

// Delete cascades to tracks, sessions and registrations.
func (s *EventService) Delete(ctx context.Context, caller domain.Identity, id int64) error {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return domain.ErrNotFound
	}

	roles := domain.ResolveRoles(caller, event.OrganizerID, 0)
	if !roles.CanMutate() {
		return domain.ErrForbidden
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.publish(ctx, models.EventEventDeleted, models.EventLifecycleEvent{
		EventID:     event.ID,
		OrganizerID: event.OrganizerID,
		Timestamp:   time.Now(),
	})

	return nil
}

func (s *EventService) publish(ctx context.Context, subject string, data interface{}) {
	if err := s.natsClient.Publish(subject, data); err != nil {
		// Log error but don't fail the operation
		logger.WithContext(ctx).Error("Failed to publish event",
			"error", err,
			"event_type", subject)
	}
}
