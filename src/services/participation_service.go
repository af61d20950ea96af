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

// ParticipationService handles event sign-ups
type ParticipationService struct {
	participations repositories.ParticipationRepository
	events         repositories.EventRepository
	now            func() time.Time
}

// NewParticipationService creates a new participation service
func NewParticipationService(participations repositories.ParticipationRepository, events repositories.EventRepository) *ParticipationService {
	return &ParticipationService{
		participations: participations,
		events:         events,
		now:            time.Now,
	}
}

// ParticipationInput is the payload for a public sign-up
type ParticipationInput struct {
	ParticipantName string
	Email           string
	PhoneNumber     *string
	Comment         *string
}

// Create records a sign-up for an event. Fails with ErrNotFound when the
// event does not exist and ErrConflict when the same name and email are
// already signed up for it.
func (ps *ParticipationService) Create(ctx context.Context, eventID uuid.UUID, input ParticipationInput) (*models.Participation, error) {
	if input.ParticipantName == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: participant name and email are required", ErrValidation)
	}

	if _, err := ps.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to check event: %w", err)
	}

	participation := &models.Participation{
		ID:              uuid.New(),
		EventID:         eventID,
		ParticipantName: input.ParticipantName,
		Email:           input.Email,
		PhoneNumber:     input.PhoneNumber,
		Comment:         input.Comment,
		CreatedAt:       ps.now(),
	}
	if err := ps.participations.Create(ctx, participation); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create participation: %w", err)
	}
	return participation, nil
}

// ListByEvent returns the sign-ups of an event.
// Fails with ErrNotFound when the event does not exist.
func (ps *ParticipationService) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Participation, error) {
	if _, err := ps.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to check event: %w", err)
	}

	participations, err := ps.participations.GetByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participations: %w", err)
	}
	return participations, nil
}

// Delete removes a single sign-up. Fails with ErrNotFound for unknown ids.
func (ps *ParticipationService) Delete(ctx context.Context, participationID uuid.UUID) error {
	if err := ps.participations.Delete(ctx, participationID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete participation: %w", err)
	}
	return nil
}
