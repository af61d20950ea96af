package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clubcal/calendar-admin-server/src/models"
	"github.com/clubcal/calendar-admin-server/src/repositories"
	"github.com/google/uuid"
)

// EventService handles calendar event operations
type EventService struct {
	events         repositories.EventRepository
	participations repositories.ParticipationRepository
	now            func() time.Time
}

// NewEventService creates a new event service
func NewEventService(events repositories.EventRepository, participations repositories.ParticipationRepository) *EventService {
	return &EventService{
		events:         events,
		participations: participations,
		now:            time.Now,
	}
}

// EventInput is the payload for creating an event
type EventInput struct {
	Year     int
	Month    int
	Day      int
	Name     string
	Detail   *string
	Category *string
}

// EventPatch is a partial update. Nil fields are left untouched;
// year, month, and day are independently overridable.
type EventPatch struct {
	Year     *int
	Month    *int
	Day      *int
	Name     *string
	Detail   *string
	Category *string
}

// Create validates the date and stores a new event stamped with the editor.
// Fails with ErrValidation on an invalid calendar date, a year below the
// current year, or an empty name.
func (es *EventService) Create(ctx context.Context, input EventInput, editor string) (*models.Event, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.Year < es.now().Year() {
		return nil, fmt.Errorf("%w: year %d is in the past", ErrValidation, input.Year)
	}
	if !validCalendarDate(input.Year, input.Month, input.Day) {
		return nil, fmt.Errorf("%w: %04d-%02d-%02d is not a calendar date", ErrValidation, input.Year, input.Month, input.Day)
	}

	event := &models.Event{
		ID:        uuid.New(),
		Date:      time.Date(input.Year, time.Month(input.Month), input.Day, 0, 0, 0, 0, time.UTC),
		CreatedAt: es.now(),
		Name:      input.Name,
		Editor:    editor,
		Detail:    input.Detail,
		Category:  input.Category,
	}
	if err := es.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// GetByID returns a single event. Fails with ErrNotFound for unknown ids.
func (es *EventService) GetByID(ctx context.Context, eventID uuid.UUID) (*models.Event, error) {
	event, err := es.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// ListMonth returns the events of a calendar month.
// Fails with ErrValidation for month values outside 1-12.
func (es *EventService) ListMonth(ctx context.Context, year, month int) ([]models.Event, error) {
	if month < 1 || month > 12 || year < 1 {
		return nil, fmt.Errorf("%w: %d-%d is not a calendar month", ErrValidation, year, month)
	}
	events, err := es.events.GetByMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// Update applies a partial update to an event. The candidate date is
// rebuilt from the stored date with only the supplied components
// overwritten, then validated as a whole. Nothing is written unless
// every check passes. The editor is stamped on success.
func (es *EventService) Update(ctx context.Context, eventID uuid.UUID, patch EventPatch, editor string) (*models.Event, error) {
	event, err := es.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	year, month, day := event.Year(), event.Month(), event.Day()
	if patch.Year != nil {
		year = *patch.Year
	}
	if patch.Month != nil {
		month = *patch.Month
	}
	if patch.Day != nil {
		day = *patch.Day
	}

	// The floor only applies to an explicitly supplied year; updating the
	// month or day of an already-past event is allowed.
	if patch.Year != nil && *patch.Year < es.now().Year() {
		return nil, fmt.Errorf("%w: year %d is in the past", ErrValidation, *patch.Year)
	}
	if !validCalendarDate(year, month, day) {
		return nil, fmt.Errorf("%w: %04d-%02d-%02d is not a calendar date", ErrValidation, year, month, day)
	}

	event.Date = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if patch.Name != nil {
		event.Name = *patch.Name
	}
	if patch.Detail != nil {
		event.Detail = patch.Detail
	}
	if patch.Category != nil {
		event.Category = patch.Category
	}
	event.Editor = editor

	if err := es.events.Update(ctx, event); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

// Delete removes an event along with its participations
func (es *EventService) Delete(ctx context.Context, eventID uuid.UUID) error {
	if err := es.events.Delete(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if err := es.participations.DeleteByEvent(ctx, eventID); err != nil {
		return fmt.Errorf("failed to delete participations for event: %w", err)
	}
	return nil
}

// validCalendarDate reports whether year/month/day name a real date.
// time.Date normalizes overflow (Feb 30 becomes Mar 1/2), so the input
// is valid only if the constructed date round-trips unchanged.
func validCalendarDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}
