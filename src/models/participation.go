package models

import (
	"time"

	"github.com/google/uuid"
)

// Participation represents a sign-up for an event.
// The triple (EventID, ParticipantName, Email) is unique.
type Participation struct {
	ID              uuid.UUID `json:"id"`
	EventID         uuid.UUID `json:"eventId"`
	ParticipantName string    `json:"participantName"`
	Email           string    `json:"email"`
	PhoneNumber     *string   `json:"phoneNumber,omitempty"`
	Comment         *string   `json:"comment,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}
