package models

// TokenType distinguishes access tokens from refresh tokens
type TokenType string

const (
	// TokenTypeAccess identifies short-lived stateless tokens attached per request
	TokenTypeAccess TokenType = "access"
	// TokenTypeRefresh identifies longer-lived tokens validated against the stored session
	TokenTypeRefresh TokenType = "refresh"
)

// Valid reports whether the token type is one of the known values
func (t TokenType) Valid() bool {
	return t == TokenTypeAccess || t == TokenTypeRefresh
}

// AuthToken is the verified content of an access or refresh token.
// It is never persisted; the refresh token string itself lives in SessionInfo.
type AuthToken struct {
	ID   string    `json:"id"` // account id of the owner
	Type TokenType `json:"type"`
}
