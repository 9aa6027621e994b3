package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"photoset/api/internal/service"
	"photoset/api/pkg/response"
)

// SessionTokenHeader carries the opaque bearer token. Lookup is
// case-insensitive.
const SessionTokenHeader = "X-Session-Token"

const ContextKeyUser = "session_user"

// SessionAuth verifies the session token and stores the user in the request
// context.
func SessionAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(SessionTokenHeader)
		if token == "" {
			response.ErrorWithCode(c, 401, "AUTH_REQUIRED", "session token required")
			c.Abort()
			return
		}

		user, err := authService.Verify(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSessionNotFound):
				response.ErrorWithCode(c, 401, "AUTH_REQUIRED", "invalid session token")
			case errors.Is(err, service.ErrSessionExpired):
				response.ErrorWithCode(c, 401, "SESSION_EXPIRED", "session expired")
			default:
				response.InternalError(c, "session verification failed")
			}
			c.Abort()
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}
