package middleware

import (
	"net/http"

	"github.com/clubcal/calendar-admin-server/src/models"
	"github.com/clubcal/calendar-admin-server/src/services"
	"github.com/gin-gonic/gin"
)

// AccessTokenCookie is the cookie carrying the access token
const AccessTokenCookie = "X-ACCESS-TOKEN"

// RefreshTokenCookie is the cookie carrying the refresh token
const RefreshTokenCookie = "X-REFRESH-TOKEN"

// AccountIDKey is the context key for the authenticated account id
const AccountIDKey = "account_id"

// AuthErrorMessage is the fixed body of every 401 response
const AuthErrorMessage = "Authentication information is missing/invalid"

// SessionMiddleware authenticates requests from the access-token cookie.
// On success the account id is attached to the context for handlers to
// consume; otherwise the request is rejected with a fixed 401 body.
func SessionMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(AccessTokenCookie)
		if err != nil || cookie == "" {
			abortUnauthenticated(c)
			return
		}

		authToken, err := tokens.Verify(c.Request.Context(), cookie)
		if err != nil || authToken.Type != models.TokenTypeAccess {
			abortUnauthenticated(c)
			return
		}

		c.Set(AccountIDKey, authToken.ID)
		c.Next()
	}
}

// GetAccountID retrieves the authenticated account id from context
func GetAccountID(c *gin.Context) string {
	if id, exists := c.Get(AccountIDKey); exists {
		return id.(string)
	}
	return ""
}

func abortUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": AuthErrorMessage})
	c.Abort()
}
