package services

import (
	"context"
	"testing"
	"time"

	"github.com/clubcal/calendar-admin-server/src/models"
	"github.com/clubcal/calendar-admin-server/src/repositories"
	"github.com/clubcal/calendar-admin-server/src/repositories/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-for-unit-tests-32ch!"

func newTestTokenService(accounts repositories.AccountRepository) *TokenService {
	return NewTokenService(accounts, testSecret, 15*time.Minute, 2*time.Hour)
}

func TestTokenService_IssueAndVerifyAccess(t *testing.T) {
	ctx := context.Background()
	ts := newTestTokenService(mock.NewAccountRepository())

	token, expiresAt, err := ts.Issue("testuser1", models.TokenTypeAccess)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	authToken, err := ts.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "testuser1", authToken.ID)
	assert.Equal(t, models.TokenTypeAccess, authToken.Type)
}

func TestTokenService_VerifyRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	ts := newTestTokenService(mock.NewAccountRepository())

	_, err := ts.Verify(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_VerifyRejectsWrongSecret(t *testing.T) {
	ctx := context.Background()
	ts := newTestTokenService(mock.NewAccountRepository())
	other := NewTokenService(mock.NewAccountRepository(), "another-secret-for-unit-tests-32", 15*time.Minute, 2*time.Hour)

	token, _, err := ts.Issue("testuser1", models.TokenTypeAccess)
	require.NoError(t, err)

	_, err = other.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_VerifyRejectsExpired(t *testing.T) {
	ctx := context.Background()
	ts := newTestTokenService(mock.NewAccountRepository())

	token, _, err := ts.Issue("testuser1", models.TokenTypeAccess)
	require.NoError(t, err)

	// Move the verifier's clock past the access TTL
	ts.now = func() time.Time { return time.Now().Add(16 * time.Minute) }

	_, err = ts.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_IssueRejectsUnknownType(t *testing.T) {
	ts := newTestTokenService(mock.NewAccountRepository())

	_, _, err := ts.Issue("testuser1", models.TokenType("session"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_VerifyRefreshAgainstStoredSession(t *testing.T) {
	ctx := context.Background()

	accounts := mock.NewAccountRepository()
	ts := newTestTokenService(accounts)

	token, expiresAt, err := ts.Issue("testuser1", models.TokenTypeRefresh)
	require.NoError(t, err)

	t.Run("matches stored session", func(t *testing.T) {
		accounts.GetByIDFunc = func(ctx context.Context, id string) (*models.Account, error) {
			return &models.Account{
				ID: "testuser1",
				Session: &models.SessionInfo{
					RefreshToken: token,
					ExpiresAt:    expiresAt,
				},
			}, nil
		}

		authToken, err := ts.Verify(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, models.TokenTypeRefresh, authToken.Type)
		assert.Equal(t, "testuser1", authToken.ID)
	})

	t.Run("rejected when no session is stored", func(t *testing.T) {
		accounts.GetByIDFunc = func(ctx context.Context, id string) (*models.Account, error) {
			return &models.Account{ID: "testuser1"}, nil
		}

		_, err := ts.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejected when a different token is stored", func(t *testing.T) {
		accounts.GetByIDFunc = func(ctx context.Context, id string) (*models.Account, error) {
			return &models.Account{
				ID: "testuser1",
				Session: &models.SessionInfo{
					RefreshToken: "a-token-from-a-newer-login",
					ExpiresAt:    expiresAt,
				},
			}, nil
		}

		_, err := ts.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejected when the stored session has expired", func(t *testing.T) {
		accounts.GetByIDFunc = func(ctx context.Context, id string) (*models.Account, error) {
			return &models.Account{
				ID: "testuser1",
				Session: &models.SessionInfo{
					RefreshToken: token,
					ExpiresAt:    time.Now().Add(-time.Minute),
				},
			}, nil
		}

		_, err := ts.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejected when the account is gone", func(t *testing.T) {
		accounts.GetByIDFunc = func(ctx context.Context, id string) (*models.Account, error) {
			return nil, repositories.ErrNotFound
		}

		_, err := ts.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
