package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oakinvest/oak-backend/internal/auth"
	"github.com/oakinvest/oak-backend/internal/flash"
	"github.com/oakinvest/oak-backend/internal/logger"
	"github.com/oakinvest/oak-backend/internal/models"
	"github.com/oakinvest/oak-backend/internal/storage"
)

// TokenCookie is the name of the session token cookie.
const TokenCookie = "token"

const principalKey = "principal"

// Principal returns the authenticated user attached by RequireSession.
func Principal(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// SetTokenCookie attaches a signed session token as an HTTP-only cookie.
func SetTokenCookie(c *gin.Context, token string, maxAge time.Duration, secure bool) {
	c.SetCookie(TokenCookie, token, int(maxAge.Seconds()), "/", "", secure, true)
}

// ClearTokenCookie expires the session token cookie immediately.
func ClearTokenCookie(c *gin.Context) {
	c.SetCookie(TokenCookie, "", -1, "/", "", false, true)
}

// RequireSession gates a route on a valid session token. The account is
// re-read from the store on every request, so deletions and role changes
// apply without waiting for the token to expire; claims are trusted only to
// locate the record. Each request resolves to exactly one outcome: no
// token, invalid token, missing user, or authenticated.
func RequireSession(tokens *auth.TokenManager, store storage.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(TokenCookie)
		if err != nil || raw == "" {
			rejectToLogin(c, "Please log in to view this page.")
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			ClearTokenCookie(c)
			rejectToLogin(c, "Session expired or invalid. Please log in again.")
			return
		}

		id, err := claims.UserID()
		if err != nil {
			ClearTokenCookie(c)
			rejectToLogin(c, "Session expired or invalid. Please log in again.")
			return
		}

		user, err := store.FindByID(c.Request.Context(), id)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				logger.Error().Err(err).Int64("user_id", id).Msg("session user lookup failed")
			}
			ClearTokenCookie(c)
			rejectToLogin(c, "User not found. Please log in again.")
			return
		}

		c.Set(principalKey, user.Sanitized())
		c.Next()
	}
}

// RequireAdmin gates a route on the principal's admin flag. It must run
// after RequireSession; a missing principal is treated as a rejection.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := Principal(c)
		if !ok || !user.IsAdmin {
			flash.Error(c, "You are not authorized to view this page.")
			c.Redirect(http.StatusSeeOther, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

func rejectToLogin(c *gin.Context, msg string) {
	flash.Error(c, msg)
	c.Redirect(http.StatusSeeOther, "/login")
	c.Abort()
}
