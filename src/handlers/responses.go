package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clubcal/calendar-admin-server/src/middleware"
	"github.com/clubcal/calendar-admin-server/src/services"
	"github.com/gin-gonic/gin"
)

// Uniform error body titles
const (
	errBadRequest = "Bad Request"
	errNotFound   = "Not Found"
	errConflict   = "Conflict"
	errInternal   = "Internal Server Error"
)

func respondError(c *gin.Context, status int, title string) {
	c.JSON(status, gin.H{"error": title})
}

// respondServiceError maps service sentinels onto the error taxonomy.
// Anything unrecognized is an infrastructure failure and becomes a 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		respondError(c, http.StatusBadRequest, errBadRequest)
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, errNotFound)
	case errors.Is(err, services.ErrConflict):
		respondError(c, http.StatusConflict, errConflict)
	case errors.Is(err, services.ErrInvalidToken), errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, middleware.AuthErrorMessage)
	default:
		c.Error(err) //nolint:errcheck // collected by the logging middleware
		respondError(c, http.StatusInternalServerError, errInternal)
	}
}

// decodeStrict decodes a JSON body rejecting unknown fields and
// trailing content
func decodeStrict(c *gin.Context, dst interface{}) error {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if decoder.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}
