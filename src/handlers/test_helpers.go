package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/clubcal/calendar-admin-server/src/middleware"
	"github.com/clubcal/calendar-admin-server/src/models"
	"github.com/clubcal/calendar-admin-server/src/repositories/mock"
	"github.com/clubcal/calendar-admin-server/src/services"
	"github.com/gin-gonic/gin"
)

// Test helpers for handler tests

const testSecret = "test-secret-for-unit-tests-32ch!"

// testServer wires the handlers against mock repositories the same way
// main.go wires them against postgres
type testServer struct {
	router         *gin.Engine
	tokens         *services.TokenService
	accounts       *mock.AccountRepository
	events         *mock.EventRepository
	participations *mock.ParticipationRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	accounts := mock.NewAccountRepository()
	events := mock.NewEventRepository()
	participations := mock.NewParticipationRepository()

	tokens := services.NewTokenService(accounts, testSecret, 15*time.Minute, 2*time.Hour)
	auth := services.NewAuthService(accounts, tokens, 20*time.Minute)
	eventService := services.NewEventService(events, participations)
	participationService := services.NewParticipationService(participations, events)

	authHandler := NewAuthHandler(auth)
	eventHandler := NewEventHandler(eventService)
	participationHandler := NewParticipationHandler(participationService)

	session := middleware.SessionMiddleware(tokens)

	router := gin.New()
	router.POST("/auth/login", authHandler.HandleLogin)
	router.DELETE("/auth/logout", session, authHandler.HandleLogout)
	router.GET("/auth/renew", authHandler.HandleRenew)
	router.GET("/:yearMonth", eventHandler.HandleListMonth)
	router.POST("/event", session, eventHandler.HandleCreate)
	router.GET("/event/:eventID", eventHandler.HandleGet)
	router.PUT("/event/:eventID", session, eventHandler.HandleUpdate)
	router.DELETE("/event/:eventID", session, eventHandler.HandleDelete)
	router.POST("/event/:eventID/participate", participationHandler.HandleCreate)
	router.GET("/event/:eventID/participate", session, participationHandler.HandleList)
	router.DELETE("/participate/:participationID", session, participationHandler.HandleDelete)

	return &testServer{
		router:         router,
		tokens:         tokens,
		accounts:       accounts,
		events:         events,
		participations: participations,
	}
}

// accessCookie mints a valid access-token cookie for the given account
func (s *testServer) accessCookie(t *testing.T, accountID string) *http.Cookie {
	t.Helper()
	token, _, err := s.tokens.Issue(accountID, models.TokenTypeAccess)
	if err != nil {
		t.Fatalf("failed to issue access token: %v", err)
	}
	return &http.Cookie{Name: middleware.AccessTokenCookie, Value: token}
}

// do executes a request against the test router
func (s *testServer) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// assertStatusCode checks if response status code matches expected
func assertStatusCode(t *testing.T, w *httptest.ResponseRecorder, expectedCode int) {
	t.Helper()
	if w.Code != expectedCode {
		t.Errorf("expected status %d, got %d: %s", expectedCode, w.Code, w.Body.String())
	}
}

// assertJSONError checks if response contains expected error message
func assertJSONError(t *testing.T, w *httptest.ResponseRecorder, expectedError string) {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if response["error"] != expectedError {
		t.Errorf("expected error '%s', got '%v'", expectedError, response["error"])
	}
}

// cookieByName finds a response cookie by name
func cookieByName(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
