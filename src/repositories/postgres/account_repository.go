package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clubcal/calendar-admin-server/src/models"
	"github.com/clubcal/calendar-admin-server/src/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountRepository is the pgx implementation of repositories.AccountRepository
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO admin_accounts (id, password_hash, name, member_since)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.pool.Exec(ctx, query, account.ID, account.PasswordHash, account.Name, account.MemberSince); err != nil {
		if isUniqueViolation(err) {
			return repositories.ErrDuplicate
		}
		return fmt.Errorf("failed to insert admin account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `
		SELECT id, password_hash, name, member_since, session_token, session_expires_at
		FROM admin_accounts
		WHERE id = $1
	`

	account := &models.Account{}
	var sessionToken *string
	var sessionExpires *time.Time
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&account.ID, &account.PasswordHash, &account.Name, &account.MemberSince,
		&sessionToken, &sessionExpires,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query admin account: %w", err)
	}

	if sessionToken != nil && sessionExpires != nil {
		account.Session = &models.SessionInfo{
			RefreshToken: *sessionToken,
			ExpiresAt:    *sessionExpires,
		}
	}
	return account, nil
}

func (r *AccountRepository) UpdateSession(ctx context.Context, id string, session *models.SessionInfo) error {
	var token *string
	var expires *time.Time
	if session != nil {
		token = &session.RefreshToken
		expires = &session.ExpiresAt
	}

	query := `UPDATE admin_accounts SET session_token = $2, session_expires_at = $3 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, token, expires)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admin_accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count admin accounts: %w", err)
	}
	return count, nil
}

// Ensure AccountRepository implements the interface
var _ repositories.AccountRepository = (*AccountRepository)(nil)
