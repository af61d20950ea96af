package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/clubcal/calendar-admin-server/src/middleware"
	"github.com/clubcal/calendar-admin-server/src/models"
	"github.com/clubcal/calendar-admin-server/src/repositories"
	"github.com/clubcal/calendar-admin-server/src/services"
)

const testPassword = "CorrectHorse9!"

// seedTestAccount registers an admin account in the mock repository and
// keeps its session in sync through UpdateSession, the way the postgres
// repository does
func seedTestAccount(t *testing.T, server *testServer) *models.Account {
	t.Helper()
	hash, err := services.HashPassword(testPassword, services.DefaultArgon2idParams)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}
	account := &models.Account{ID: "admin", PasswordHash: hash, Name: "Admin"}
	server.accounts.GetByIDFunc = func(ctx context.Context, id string) (*models.Account, error) {
		if id == account.ID {
			return account, nil
		}
		return nil, repositories.ErrNotFound
	}
	server.accounts.UpdateSessionFunc = func(ctx context.Context, id string, session *models.SessionInfo) error {
		account.Session = session
		return nil
	}
	return account
}

func TestHandleLogin(t *testing.T) {
	t.Run("valid credentials set both token cookies", func(t *testing.T) {
		server := newTestServer(t)
		account := seedTestAccount(t, server)

		w := server.do(http.MethodPost, "/auth/login", `{"id": "admin", "password": "CorrectHorse9!"}`)

		assertStatusCode(t, w, http.StatusOK)

		access := cookieByName(w, middleware.AccessTokenCookie)
		if access == nil || access.Value == "" {
			t.Fatal("expected access token cookie to be set")
		}
		if !access.HttpOnly || !access.Secure {
			t.Error("expected access token cookie to be HttpOnly and Secure")
		}
		refresh := cookieByName(w, middleware.RefreshTokenCookie)
		if refresh == nil || refresh.Value == "" {
			t.Fatal("expected refresh token cookie to be set")
		}

		if account.Session == nil {
			t.Fatal("expected session to be persisted")
		}
		if account.Session.RefreshToken != refresh.Value {
			t.Error("expected persisted session to hold the refresh cookie value")
		}
	})

	t.Run("wrong password rejected with fixed message", func(t *testing.T) {
		server := newTestServer(t)
		seedTestAccount(t, server)

		w := server.do(http.MethodPost, "/auth/login", `{"id": "admin", "password": "wrong"}`)

		assertStatusCode(t, w, http.StatusUnauthorized)
		assertJSONError(t, w, middleware.AuthErrorMessage)
		if len(server.accounts.Calls["UpdateSession"]) != 0 {
			t.Error("expected no session writes on failed login")
		}
	})

	t.Run("unknown account rejected with fixed message", func(t *testing.T) {
		server := newTestServer(t)

		w := server.do(http.MethodPost, "/auth/login", `{"id": "ghost", "password": "CorrectHorse9!"}`)

		assertStatusCode(t, w, http.StatusUnauthorized)
		assertJSONError(t, w, middleware.AuthErrorMessage)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		server := newTestServer(t)

		w := server.do(http.MethodPost, "/auth/login", `{"id": "admin"}`)

		assertStatusCode(t, w, http.StatusBadRequest)
		assertJSONError(t, w, "Bad Request")
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		server := newTestServer(t)
		seedTestAccount(t, server)

		w := server.do(http.MethodPost, "/auth/login",
			`{"id": "admin", "password": "CorrectHorse9!", "remember": true}`)

		assertStatusCode(t, w, http.StatusBadRequest)
	})
}

func TestHandleLogout(t *testing.T) {
	t.Run("clears the stored session and expires cookies", func(t *testing.T) {
		server := newTestServer(t)
		account := seedTestAccount(t, server)
		account.Session = &models.SessionInfo{RefreshToken: "stale"}

		w := server.do(http.MethodDelete, "/auth/logout", "", server.accessCookie(t, "admin"))

		assertStatusCode(t, w, http.StatusOK)
		if account.Session != nil {
			t.Error("expected session to be cleared")
		}
		access := cookieByName(w, middleware.AccessTokenCookie)
		if access == nil || access.MaxAge >= 0 {
			t.Error("expected access token cookie to be expired")
		}
	})

	t.Run("requires a valid access token", func(t *testing.T) {
		server := newTestServer(t)

		w := server.do(http.MethodDelete, "/auth/logout", "")

		assertStatusCode(t, w, http.StatusUnauthorized)
		assertJSONError(t, w, middleware.AuthErrorMessage)
	})
}

func TestHandleRenew(t *testing.T) {
	// login drives the full flow so the refresh token matches the
	// persisted session
	login := func(t *testing.T, server *testServer) *http.Cookie {
		t.Helper()
		w := server.do(http.MethodPost, "/auth/login", `{"id": "admin", "password": "CorrectHorse9!"}`)
		assertStatusCode(t, w, http.StatusOK)
		refresh := cookieByName(w, middleware.RefreshTokenCookie)
		if refresh == nil {
			t.Fatal("expected refresh token cookie from login")
		}
		return refresh
	}

	t.Run("valid refresh token yields a fresh access token", func(t *testing.T) {
		server := newTestServer(t)
		seedTestAccount(t, server)
		refresh := login(t, server)

		w := server.do(http.MethodGet, "/auth/renew", "", refresh)

		assertStatusCode(t, w, http.StatusOK)
		access := cookieByName(w, middleware.AccessTokenCookie)
		if access == nil || access.Value == "" {
			t.Fatal("expected a fresh access token cookie")
		}
		// a two hour session is nowhere near the renew window
		rotated := cookieByName(w, middleware.RefreshTokenCookie)
		if rotated == nil || rotated.Value != refresh.Value {
			t.Error("expected refresh token to be returned unrotated")
		}
	})

	t.Run("missing cookie rejected with fixed message", func(t *testing.T) {
		server := newTestServer(t)

		w := server.do(http.MethodGet, "/auth/renew", "")

		assertStatusCode(t, w, http.StatusUnauthorized)
		assertJSONError(t, w, middleware.AuthErrorMessage)
	})

	t.Run("access token in refresh cookie rejected", func(t *testing.T) {
		server := newTestServer(t)
		seedTestAccount(t, server)

		access := server.accessCookie(t, "admin")
		access.Name = middleware.RefreshTokenCookie
		w := server.do(http.MethodGet, "/auth/renew", "", access)

		assertStatusCode(t, w, http.StatusUnauthorized)
		assertJSONError(t, w, middleware.AuthErrorMessage)
	})

	t.Run("revoked session rejected", func(t *testing.T) {
		server := newTestServer(t)
		account := seedTestAccount(t, server)
		refresh := login(t, server)
		account.Session = nil

		w := server.do(http.MethodGet, "/auth/renew", "", refresh)

		assertStatusCode(t, w, http.StatusUnauthorized)
		assertJSONError(t, w, middleware.AuthErrorMessage)
	})
}
