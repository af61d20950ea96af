package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clubcal/calendar-admin-server/src/models"
	"github.com/clubcal/calendar-admin-server/src/repositories"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies access and refresh tokens.
// Access tokens are stateless; refresh tokens are additionally checked
// against the session persisted on the account, so a login on one
// device revokes the refresh token of any previous login.
type TokenService struct {
	accounts   repositories.AccountRepository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenService creates a new token service
func NewTokenService(accounts repositories.AccountRepository, secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		accounts:   accounts,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// tokenClaims is the JWT claim set for both token types.
// The account id travels in the registered subject claim.
type tokenClaims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// TTL returns the configured lifetime for the given token type
func (ts *TokenService) TTL(tokenType models.TokenType) time.Duration {
	if tokenType == models.TokenTypeRefresh {
		return ts.refreshTTL
	}
	return ts.accessTTL
}

// Issue signs a token of the given type for the account and returns
// the token string along with its expiry
func (ts *TokenService) Issue(accountID string, tokenType models.TokenType) (string, time.Time, error) {
	if !tokenType.Valid() {
		return "", time.Time{}, fmt.Errorf("%w: unknown token type %q", ErrInvalidToken, tokenType)
	}

	issuedAt := ts.now()
	expiresAt := issuedAt.Add(ts.TTL(tokenType))

	claims := tokenClaims{
		Type: string(tokenType),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, expiry, and token type. Refresh tokens must
// also match the session currently stored for the account.
// Fails with ErrInvalidToken on any mismatch.
func (ts *TokenService) Verify(ctx context.Context, tokenString string) (*models.AuthToken, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secret, nil
	}, jwt.WithTimeFunc(ts.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	tokenType := models.TokenType(claims.Type)
	if !tokenType.Valid() || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	if tokenType == models.TokenTypeRefresh {
		if err := ts.verifySession(ctx, claims.Subject, tokenString); err != nil {
			return nil, err
		}
	}

	return &models.AuthToken{ID: claims.Subject, Type: tokenType}, nil
}

// verifySession checks the refresh token against the account's stored session
func (ts *TokenService) verifySession(ctx context.Context, accountID, tokenString string) error {
	account, err := ts.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to load account for token verification: %w", err)
	}
	if !account.HasActiveSession(ts.now()) || account.Session.RefreshToken != tokenString {
		return ErrInvalidToken
	}
	return nil
}
