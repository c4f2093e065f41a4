package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/autocrm/autocrm/internal/shared/constants"
)

// GetUserID returns the caller id set by the auth middleware.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetUserRole returns the caller role set by the auth middleware, or "".
func GetUserRole(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUserRole)
}
