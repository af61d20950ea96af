package models

import "time"

// Account represents an admin account that manages the calendar
type Account struct {
	ID           string       `json:"id"`
	PasswordHash string       `json:"-"` // never expose
	Name         string       `json:"name"`
	MemberSince  time.Time    `json:"member_since"`
	Session      *SessionInfo `json:"-"`
}

// SessionInfo is the single active session of an account.
// Overwritten on each login, cleared on logout.
type SessionInfo struct {
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"-"`
}

// HasActiveSession returns true if the account holds a session that has not expired
func (a *Account) HasActiveSession(now time.Time) bool {
	return a.Session != nil && a.Session.RefreshToken != "" && now.Before(a.Session.ExpiresAt)
}
