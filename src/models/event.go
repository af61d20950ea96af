package models

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a calendar event
type Event struct {
	ID        uuid.UUID `json:"id"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name"`
	Editor    string    `json:"editor"`
	Detail    *string   `json:"detail,omitempty"`
	Category  *string   `json:"category,omitempty"`
}

// Year returns the calendar year of the event date
func (e *Event) Year() int {
	return e.Date.Year()
}

// Month returns the calendar month of the event date (1-12)
func (e *Event) Month() int {
	return int(e.Date.Month())
}

// Day returns the day of month of the event date
func (e *Event) Day() int {
	return e.Date.Day()
}
