package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/clubcal/calendar-admin-server/src/middleware"
	"github.com/clubcal/calendar-admin-server/src/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EventHandler handles calendar event endpoints
type EventHandler struct {
	events *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// HandleListMonth serves GET /{year}-{month}
func (eh *EventHandler) HandleListMonth(c *gin.Context) {
	year, month, ok := parseYearMonth(c.Param("yearMonth"))
	if !ok {
		respondError(c, http.StatusBadRequest, errBadRequest)
		return
	}

	events, err := eh.events.ListMonth(c.Request.Context(), year, month)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"eventList": events})
}

// createEventRequest is the POST /event body.
// Pointer fields distinguish absent from zero.
type createEventRequest struct {
	Year     *int    `json:"year"`
	Month    *int    `json:"month"`
	Date     *int    `json:"date"`
	Name     *string `json:"name"`
	Detail   *string `json:"detail"`
	Category *string `json:"category"`
}

// HandleCreate creates a new event stamped with the caller as editor
func (eh *EventHandler) HandleCreate(c *gin.Context) {
	var req createEventRequest
	if err := decodeStrict(c, &req); err != nil {
		respondError(c, http.StatusBadRequest, errBadRequest)
		return
	}
	if req.Year == nil || req.Month == nil || req.Date == nil || req.Name == nil {
		respondError(c, http.StatusBadRequest, errBadRequest)
		return
	}

	input := services.EventInput{
		Year:     *req.Year,
		Month:    *req.Month,
		Day:      *req.Date,
		Name:     *req.Name,
		Detail:   req.Detail,
		Category: req.Category,
	}
	if _, err := eh.events.Create(c.Request.Context(), input, middleware.GetAccountID(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// HandleGet serves a single event
func (eh *EventHandler) HandleGet(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventID"))
	if err != nil {
		respondError(c, http.StatusNotFound, errNotFound)
		return
	}

	event, err := eh.events.GetByID(c.Request.Context(), eventID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// updateEventRequest is the partial PUT /event/{eventID} body.
// Any field outside this allow-list is rejected by the strict decoder.
type updateEventRequest struct {
	Year     *int    `json:"year"`
	Month    *int    `json:"month"`
	Date     *int    `json:"date"`
	Name     *string `json:"name"`
	Detail   *string `json:"detail"`
	Category *string `json:"category"`
}

// HandleUpdate applies a partial update to an event
func (eh *EventHandler) HandleUpdate(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventID"))
	if err != nil {
		respondError(c, http.StatusNotFound, errNotFound)
		return
	}

	var req updateEventRequest
	if err := decodeStrict(c, &req); err != nil {
		respondError(c, http.StatusBadRequest, errBadRequest)
		return
	}

	patch := services.EventPatch{
		Year:     req.Year,
		Month:    req.Month,
		Day:      req.Date,
		Name:     req.Name,
		Detail:   req.Detail,
		Category: req.Category,
	}
	if _, err := eh.events.Update(c.Request.Context(), eventID, patch, middleware.GetAccountID(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// HandleDelete removes an event and its participations
func (eh *EventHandler) HandleDelete(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventID"))
	if err != nil {
		respondError(c, http.StatusNotFound, errNotFound)
		return
	}

	if err := eh.events.Delete(c.Request.Context(), eventID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// parseYearMonth parses a "{year}-{month}" path segment such as "2021-8"
func parseYearMonth(segment string) (year, month int, ok bool) {
	parts := strings.SplitN(segment, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return year, month, true
}
