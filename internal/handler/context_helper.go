package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/msaedi/instructly-sub007/internal/middleware"
	"github.com/msaedi/instructly-sub007/internal/models"
)

func actorIDFromContext(c *gin.Context) *string {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return &claims.UserID
}
