package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/clubcal/calendar-admin-server/src/middleware"
	"github.com/clubcal/calendar-admin-server/src/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles the login/logout/renew endpoints
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// loginRequest is the POST /auth/login body
type loginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and sets the token cookies
func (ah *AuthHandler) HandleLogin(c *gin.Context) {
	var req loginRequest
	if err := decodeStrict(c, &req); err != nil || req.ID == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, errBadRequest)
		return
	}

	pair, err := ah.auth.Login(c.Request.Context(), req.ID, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, middleware.AuthErrorMessage)
			return
		}
		respondServiceError(c, err)
		return
	}

	setTokenCookies(c, pair)
	c.Status(http.StatusOK)
}

// HandleLogout clears the stored session and expires the cookies.
// Requires a valid access token.
func (ah *AuthHandler) HandleLogout(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	if err := ah.auth.Logout(c.Request.Context(), accountID); err != nil {
		respondServiceError(c, err)
		return
	}

	clearTokenCookies(c)
	c.Status(http.StatusOK)
}

// HandleRenew mints a new access token from the refresh-token cookie
func (ah *AuthHandler) HandleRenew(c *gin.Context) {
	cookie, err := c.Cookie(middleware.RefreshTokenCookie)
	if err != nil || cookie == "" {
		respondError(c, http.StatusUnauthorized, middleware.AuthErrorMessage)
		return
	}

	pair, err := ah.auth.Renew(c.Request.Context(), cookie)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	setTokenCookies(c, pair)
	c.Status(http.StatusOK)
}

func setTokenCookies(c *gin.Context, pair *services.TokenPair) {
	now := time.Now()
	c.SetCookie(middleware.AccessTokenCookie, pair.AccessToken,
		int(pair.AccessExpiresAt.Sub(now).Seconds()), "/", "", true, true)
	c.SetCookie(middleware.RefreshTokenCookie, pair.RefreshToken,
		int(pair.RefreshExpiresAt.Sub(now).Seconds()), "/", "", true, true)
}

func clearTokenCookies(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", true, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", true, true)
}
