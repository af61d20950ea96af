package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clubcal/calendar-admin-server/src/models"
	"github.com/clubcal/calendar-admin-server/src/repositories"
)

// TokenPair carries the tokens minted for a session along with their expiries
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthService handles the login/logout/renew lifecycle
type AuthService struct {
	accounts    repositories.AccountRepository
	tokens      *TokenService
	renewWindow time.Duration
	now         func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(accounts repositories.AccountRepository, tokens *TokenService, renewWindow time.Duration) *AuthService {
	return &AuthService{
		accounts:    accounts,
		tokens:      tokens,
		renewWindow: renewWindow,
		now:         time.Now,
	}
}

// Login verifies credentials, issues an access and a refresh token, and
// persists the refresh token as the account's single active session.
// Fails with ErrInvalidCredentials when the id or password is wrong.
func (as *AuthService) Login(ctx context.Context, id, password string) (*TokenPair, error) {
	account, err := as.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if err := VerifyPassword(account.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	pair, err := as.issuePair(account.ID)
	if err != nil {
		return nil, err
	}

	session := &models.SessionInfo{
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.RefreshExpiresAt,
	}
	if err := as.accounts.UpdateSession(ctx, account.ID, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return pair, nil
}

// Logout clears the account's session, revoking its refresh token
func (as *AuthService) Logout(ctx context.Context, accountID string) error {
	if err := as.accounts.UpdateSession(ctx, accountID, nil); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Renew mints a new access token from a valid refresh token. The refresh
// token itself is rotated when less than the renew window remains,
// otherwise it is returned unchanged.
func (as *AuthService) Renew(ctx context.Context, refreshToken string) (*TokenPair, error) {
	authToken, err := as.tokens.Verify(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if authToken.Type != models.TokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	account, err := as.accounts.GetByID(ctx, authToken.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	accessToken, accessExpires, err := as.tokens.Issue(account.ID, models.TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	pair := &TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpires,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: account.Session.ExpiresAt,
	}

	// Rotate the refresh token when it is close to expiry
	if account.Session.ExpiresAt.Sub(as.now()) < as.renewWindow {
		newRefresh, refreshExpires, err := as.tokens.Issue(account.ID, models.TokenTypeRefresh)
		if err != nil {
			return nil, err
		}
		session := &models.SessionInfo{RefreshToken: newRefresh, ExpiresAt: refreshExpires}
		if err := as.accounts.UpdateSession(ctx, account.ID, session); err != nil {
			return nil, fmt.Errorf("failed to persist rotated session: %w", err)
		}
		pair.RefreshToken = newRefresh
		pair.RefreshExpiresAt = refreshExpires
	}

	return pair, nil
}

// SeedAccount creates an admin account if none exist yet.
// Returns true when an account was created.
func (as *AuthService) SeedAccount(ctx context.Context, id, name, password string) (bool, error) {
	count, err := as.accounts.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check existing accounts: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if len(password) < 8 {
		return false, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	hash, err := HashPassword(password, DefaultArgon2idParams)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		ID:           id,
		PasswordHash: hash,
		Name:         name,
		MemberSince:  as.now(),
	}
	if err := as.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create account: %w", err)
	}
	return true, nil
}

// issuePair mints a fresh access and refresh token for the account
func (as *AuthService) issuePair(accountID string) (*TokenPair, error) {
	accessToken, accessExpires, err := as.tokens.Issue(accountID, models.TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExpires, err := as.tokens.Issue(accountID, models.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpires,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpires,
	}, nil
}
