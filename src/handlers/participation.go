package handlers

import (
	"net/http"

	"github.com/clubcal/calendar-admin-server/src/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParticipationHandler handles event sign-up endpoints
type ParticipationHandler struct {
	participations *services.ParticipationService
}

// NewParticipationHandler creates a new participation handler
func NewParticipationHandler(participations *services.ParticipationService) *ParticipationHandler {
	return &ParticipationHandler{participations: participations}
}

// createParticipationRequest is the public sign-up body
type createParticipationRequest struct {
	ParticipantName *string `json:"participantName"`
	Email           *string `json:"email"`
	PhoneNumber     *string `json:"phoneNumber"`
	Comment         *string `json:"comment"`
}

// HandleCreate records a public sign-up for an event
func (ph *ParticipationHandler) HandleCreate(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventID"))
	if err != nil {
		respondError(c, http.StatusNotFound, errNotFound)
		return
	}

	var req createParticipationRequest
	if err := decodeStrict(c, &req); err != nil {
		respondError(c, http.StatusBadRequest, errBadRequest)
		return
	}
	if req.ParticipantName == nil || req.Email == nil {
		respondError(c, http.StatusBadRequest, errBadRequest)
		return
	}

	input := services.ParticipationInput{
		ParticipantName: *req.ParticipantName,
		Email:           *req.Email,
		PhoneNumber:     req.PhoneNumber,
		Comment:         req.Comment,
	}
	if _, err := ph.participations.Create(c.Request.Context(), eventID, input); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// HandleList serves the sign-ups of an event to admins
func (ph *ParticipationHandler) HandleList(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventID"))
	if err != nil {
		respondError(c, http.StatusNotFound, errNotFound)
		return
	}

	participations, err := ph.participations.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"participationList": participations})
}

// HandleDelete removes a single sign-up
func (ph *ParticipationHandler) HandleDelete(c *gin.Context) {
	participationID, err := uuid.Parse(c.Param("participationID"))
	if err != nil {
		respondError(c, http.StatusNotFound, errNotFound)
		return
	}

	if err := ph.participations.Delete(c.Request.Context(), participationID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
