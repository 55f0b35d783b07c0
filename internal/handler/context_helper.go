package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/MaazSajjad/smart-scheduler-sub001/internal/middleware"
	"github.com/MaazSajjad/smart-scheduler-sub001/internal/models"
)

// CurrentUser extracts the authenticated claims placed by the JWT middleware.
func CurrentUser(c *gin.Context) (*models.JWTClaims, bool) {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok
}
