package handler

import (
	"github.com/gin-gonic/gin"

	"photoset/api/internal/handler/middleware"
	"photoset/api/internal/model"
	"photoset/api/internal/service"
)

// currentUser returns the user placed in context by the session middleware.
func currentUser(c *gin.Context) (*model.User, bool) {
	val, exists := c.Get(middleware.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := val.(*model.User)
	return user, ok
}

func clientInfo(c *gin.Context) service.ClientInfo {
	return service.ClientInfo{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
