package mock

import (
	"context"

	"github.com/clubcal/calendar-admin-server/src/models"
	"github.com/clubcal/calendar-admin-server/src/repositories"
	"github.com/google/uuid"
)

// ParticipationRepository is a mock implementation of repositories.ParticipationRepository
type ParticipationRepository struct {
	// Function stubs that can be overridden in tests
	CreateFunc        func(ctx context.Context, participation *models.Participation) error
	GetByEventFunc    func(ctx context.Context, eventID uuid.UUID) ([]models.Participation, error)
	DeleteFunc        func(ctx context.Context, participationID uuid.UUID) error
	DeleteByEventFunc func(ctx context.Context, eventID uuid.UUID) error

	// Call tracking
	Calls map[string][]interface{}
}

// NewParticipationRepository creates a new mock participation repository
func NewParticipationRepository() *ParticipationRepository {
	return &ParticipationRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *ParticipationRepository) Create(ctx context.Context, participation *models.Participation) error {
	m.Calls["Create"] = append(m.Calls["Create"], participation)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, participation)
	}
	return nil
}

func (m *ParticipationRepository) GetByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Participation, error) {
	m.Calls["GetByEvent"] = append(m.Calls["GetByEvent"], eventID)
	if m.GetByEventFunc != nil {
		return m.GetByEventFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *ParticipationRepository) Delete(ctx context.Context, participationID uuid.UUID) error {
	m.Calls["Delete"] = append(m.Calls["Delete"], participationID)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, participationID)
	}
	return nil
}

func (m *ParticipationRepository) DeleteByEvent(ctx context.Context, eventID uuid.UUID) error {
	m.Calls["DeleteByEvent"] = append(m.Calls["DeleteByEvent"], eventID)
	if m.DeleteByEventFunc != nil {
		return m.DeleteByEventFunc(ctx, eventID)
	}
	return nil
}

// Ensure ParticipationRepository implements the interface
var _ repositories.ParticipationRepository = (*ParticipationRepository)(nil)
