package service

import (
	"strings"
	"time"

	"github.com/spendwise/spendwise-backend/internal/calendar"
	"github.com/spendwise/spendwise-backend/internal/domain"
	"github.com/spendwise/spendwise-backend/internal/websocket"
)

// EventService handles calendar event business logic
type EventService struct {
	eventRepo domain.EventRepository
	publisher websocket.EventPublisher
	now       func() time.Time
}

// NewEventService creates a new EventService
func NewEventService(eventRepo domain.EventRepository, publisher websocket.EventPublisher) *EventService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &EventService{
		eventRepo: eventRepo,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateEventInput holds the input for creating a calendar event
type CreateEventInput struct {
	Name string
	Type string
	Date time.Time
}

// CreateEvent creates a new calendar event with validation
func (s *EventService) CreateEvent(owner string, input CreateEventInput) (*domain.Event, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}

	eventType := strings.TrimSpace(input.Type)
	if eventType == "" {
		return nil, domain.ErrTypeRequired
	}

	event := &domain.Event{
		Name:      name,
		Type:      eventType,
		Date:      calendar.StartOfDay(input.Date),
		CreatedBy: owner,
	}

	created, err := s.eventRepo.Create(event)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(owner, websocket.NewCalendarEventCreatedEvent(created))

	return created, nil
}

// ListEvents returns the owner's events ordered by date. Events falling
// on the current day additionally raise a reminder on the notification
// channel, once per listing. Reminders are not deduplicated across calls.
func (s *EventService) ListEvents(owner string) ([]*domain.Event, error) {
	events, err := s.eventRepo.ListByOwner(owner)
	if err != nil {
		return nil, err
	}

	today := s.now()
	for _, e := range events {
		if calendar.SameDay(e.Date, today) {
			s.publisher.Publish(owner, websocket.NewReminderEvent(e))
		}
	}

	return events, nil
}

// EventsForDay returns the owner's events falling on the given day
func (s *EventService) EventsForDay(owner string, day time.Time) ([]*domain.Event, error) {
	events, err := s.eventRepo.ListByOwner(owner)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.Event, 0)
	for _, e := range events {
		if calendar.SameDay(e.Date, day) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// DeleteEvent removes a calendar event owned by the caller
func (s *EventService) DeleteEvent(owner string, id int32) error {
	deleted, err := s.eventRepo.Delete(owner, id)
	if err != nil {
		return err
	}

	s.publisher.Publish(owner, websocket.NewCalendarEventDeletedEvent(deleted.ID))

	return nil
}
