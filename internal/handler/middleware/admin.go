package middleware

import (
	"github.com/gin-gonic/gin"

	"photoset/api/internal/model"
	"photoset/api/pkg/response"
)

// AdminOnly checks that the authenticated user carries the admin flag.
// Must be used after SessionAuth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		userVal, exists := c.Get(ContextKeyUser)
		if !exists {
			response.Unauthorized(c, "missing authentication")
			c.Abort()
			return
		}
		user, ok := userVal.(*model.User)
		if !ok {
			response.Unauthorized(c, "invalid user context")
			c.Abort()
			return
		}

		if !user.IsAdmin {
			response.Forbidden(c, "admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
