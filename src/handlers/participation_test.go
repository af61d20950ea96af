package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/clubcal/calendar-admin-server/src/models"
	"github.com/clubcal/calendar-admin-server/src/repositories"
	"github.com/google/uuid"
)

func TestHandleParticipationCreate(t *testing.T) {
	eventID := uuid.New()

	t.Run("public sign-up accepted", func(t *testing.T) {
		server := newTestServer(t)
		server.events.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Event, error) {
			return storedTestEvent(id), nil
		}

		w := server.do(http.MethodPost, "/event/"+eventID.String()+"/participate",
			`{"participantName": "Taro", "email": "taro@example.com"}`)

		assertStatusCode(t, w, http.StatusOK)
		creates := server.participations.Calls["Create"]
		if len(creates) != 1 {
			t.Fatalf("expected 1 Create call, got %d", len(creates))
		}
		created := creates[0].(*models.Participation)
		if created.EventID != eventID {
			t.Errorf("expected participation bound to event %s, got %s", eventID, created.EventID)
		}
		if created.ID == uuid.Nil {
			t.Error("expected participation ID to be assigned")
		}
	})

	t.Run("duplicate sign-up returns conflict", func(t *testing.T) {
		server := newTestServer(t)
		server.events.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Event, error) {
			return storedTestEvent(id), nil
		}
		server.participations.CreateFunc = func(ctx context.Context, p *models.Participation) error {
			return repositories.ErrDuplicate
		}

		w := server.do(http.MethodPost, "/event/"+eventID.String()+"/participate",
			`{"participantName": "Taro", "email": "taro@example.com"}`)

		assertStatusCode(t, w, http.StatusConflict)
		assertJSONError(t, w, "Conflict")
	})

	t.Run("unknown event returns not found", func(t *testing.T) {
		server := newTestServer(t)

		w := server.do(http.MethodPost, "/event/"+eventID.String()+"/participate",
			`{"participantName": "Taro", "email": "taro@example.com"}`)

		assertStatusCode(t, w, http.StatusNotFound)
		assertJSONError(t, w, "Not Found")
	})

	t.Run("missing email rejected", func(t *testing.T) {
		server := newTestServer(t)
		server.events.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Event, error) {
			return storedTestEvent(id), nil
		}

		w := server.do(http.MethodPost, "/event/"+eventID.String()+"/participate",
			`{"participantName": "Taro"}`)

		assertStatusCode(t, w, http.StatusBadRequest)
		assertJSONError(t, w, "Bad Request")
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		server := newTestServer(t)
		server.events.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Event, error) {
			return storedTestEvent(id), nil
		}

		w := server.do(http.MethodPost, "/event/"+eventID.String()+"/participate",
			`{"participantName": "Taro", "email": "taro@example.com", "age": 30}`)

		assertStatusCode(t, w, http.StatusBadRequest)
	})
}

func TestHandleParticipationList(t *testing.T) {
	eventID := uuid.New()

	t.Run("lists sign-ups for admins", func(t *testing.T) {
		server := newTestServer(t)
		server.events.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Event, error) {
			return storedTestEvent(id), nil
		}
		server.participations.GetByEventFunc = func(ctx context.Context, id uuid.UUID) ([]models.Participation, error) {
			return []models.Participation{{
				ID:              uuid.New(),
				EventID:         id,
				ParticipantName: "Taro",
				Email:           "taro@example.com",
				CreatedAt:       time.Now(),
			}}, nil
		}

		w := server.do(http.MethodGet, "/event/"+eventID.String()+"/participate", "",
			server.accessCookie(t, "admin"))

		assertStatusCode(t, w, http.StatusOK)
		var response struct {
			ParticipationList []models.Participation `json:"participationList"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(response.ParticipationList) != 1 {
			t.Fatalf("expected 1 participation, got %d", len(response.ParticipationList))
		}
		if response.ParticipationList[0].ParticipantName != "Taro" {
			t.Errorf("unexpected participant name %q", response.ParticipationList[0].ParticipantName)
		}
	})

	t.Run("requires authentication", func(t *testing.T) {
		server := newTestServer(t)

		w := server.do(http.MethodGet, "/event/"+eventID.String()+"/participate", "")

		assertStatusCode(t, w, http.StatusUnauthorized)
		assertJSONError(t, w, "Authentication information is missing/invalid")
	})
}

func TestHandleParticipationDelete(t *testing.T) {
	t.Run("removes a sign-up", func(t *testing.T) {
		server := newTestServer(t)
		participationID := uuid.New()

		w := server.do(http.MethodDelete, "/participate/"+participationID.String(), "",
			server.accessCookie(t, "admin"))

		assertStatusCode(t, w, http.StatusOK)
		if len(server.participations.Calls["Delete"]) != 1 {
			t.Errorf("expected 1 Delete call, got %d", len(server.participations.Calls["Delete"]))
		}
	})

	t.Run("unknown sign-up returns not found", func(t *testing.T) {
		server := newTestServer(t)
		server.participations.DeleteFunc = func(ctx context.Context, id uuid.UUID) error {
			return repositories.ErrNotFound
		}

		w := server.do(http.MethodDelete, "/participate/"+uuid.NewString(), "",
			server.accessCookie(t, "admin"))

		assertStatusCode(t, w, http.StatusNotFound)
	})
}
