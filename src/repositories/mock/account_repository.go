package mock

import (
	"context"

	"github.com/clubcal/calendar-admin-server/src/models"
	"github.com/clubcal/calendar-admin-server/src/repositories"
)

// AccountRepository is a mock implementation of repositories.AccountRepository
type AccountRepository struct {
	// Function stubs that can be overridden in tests
	CreateFunc        func(ctx context.Context, account *models.Account) error
	GetByIDFunc       func(ctx context.Context, id string) (*models.Account, error)
	UpdateSessionFunc func(ctx context.Context, id string, session *models.SessionInfo) error
	CountFunc         func(ctx context.Context) (int, error)

	// Call tracking
	Calls map[string][]interface{}
}

// NewAccountRepository creates a new mock account repository
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	m.Calls["Create"] = append(m.Calls["Create"], account)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	return nil
}

func (m *AccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	m.Calls["GetByID"] = append(m.Calls["GetByID"], id)
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, repositories.ErrNotFound
}

func (m *AccountRepository) UpdateSession(ctx context.Context, id string, session *models.SessionInfo) error {
	m.Calls["UpdateSession"] = append(m.Calls["UpdateSession"], []interface{}{id, session})
	if m.UpdateSessionFunc != nil {
		return m.UpdateSessionFunc(ctx, id, session)
	}
	return nil
}

func (m *AccountRepository) Count(ctx context.Context) (int, error) {
	m.Calls["Count"] = append(m.Calls["Count"], nil)
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// Ensure AccountRepository implements the interface
var _ repositories.AccountRepository = (*AccountRepository)(nil)
