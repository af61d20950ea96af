package repositories

import (
	"context"
	"errors"

	"github.com/clubcal/calendar-admin-server/src/models"
	"github.com/google/uuid"
)

var (
	// ErrNotFound indicates no record matched the query
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a unique constraint was violated
	ErrDuplicate = errors.New("duplicate record")
)

// AccountRepository defines the interface for admin account data access
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)

	// UpdateSession overwrites the account's session; a nil session clears it
	UpdateSession(ctx context.Context, id string, session *models.SessionInfo) error

	Count(ctx context.Context) (int, error)
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, eventID uuid.UUID) (*models.Event, error)
	GetByMonth(ctx context.Context, year, month int) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, eventID uuid.UUID) error
}

// ParticipationRepository defines the interface for participation data access
type ParticipationRepository interface {
	Create(ctx context.Context, participation *models.Participation) error
	GetByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Participation, error)
	Delete(ctx context.Context, participationID uuid.UUID) error
	DeleteByEvent(ctx context.Context, eventID uuid.UUID) error
}
