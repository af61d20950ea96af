package mock

import (
	"context"

	"github.com/clubcal/calendar-admin-server/src/models"
	"github.com/clubcal/calendar-admin-server/src/repositories"
	"github.com/google/uuid"
)

// EventRepository is a mock implementation of repositories.EventRepository
type EventRepository struct {
	// Function stubs that can be overridden in tests
	CreateFunc     func(ctx context.Context, event *models.Event) error
	GetByIDFunc    func(ctx context.Context, eventID uuid.UUID) (*models.Event, error)
	GetByMonthFunc func(ctx context.Context, year, month int) ([]models.Event, error)
	UpdateFunc     func(ctx context.Context, event *models.Event) error
	DeleteFunc     func(ctx context.Context, eventID uuid.UUID) error

	// Call tracking
	Calls map[string][]interface{}
}

// NewEventRepository creates a new mock event repository
func NewEventRepository() *EventRepository {
	return &EventRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *EventRepository) Create(ctx context.Context, event *models.Event) error {
	m.Calls["Create"] = append(m.Calls["Create"], event)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, event)
	}
	return nil
}

func (m *EventRepository) GetByID(ctx context.Context, eventID uuid.UUID) (*models.Event, error) {
	m.Calls["GetByID"] = append(m.Calls["GetByID"], eventID)
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, eventID)
	}
	return nil, repositories.ErrNotFound
}

func (m *EventRepository) GetByMonth(ctx context.Context, year, month int) ([]models.Event, error) {
	m.Calls["GetByMonth"] = append(m.Calls["GetByMonth"], []interface{}{year, month})
	if m.GetByMonthFunc != nil {
		return m.GetByMonthFunc(ctx, year, month)
	}
	return nil, nil
}

func (m *EventRepository) Update(ctx context.Context, event *models.Event) error {
	m.Calls["Update"] = append(m.Calls["Update"], event)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, event)
	}
	return nil
}

func (m *EventRepository) Delete(ctx context.Context, eventID uuid.UUID) error {
	m.Calls["Delete"] = append(m.Calls["Delete"], eventID)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, eventID)
	}
	return nil
}

// Ensure EventRepository implements the interface
var _ repositories.EventRepository = (*EventRepository)(nil)
