package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/clubhubdev/clubhub-backend/internal/auth"
)

// AccessContext stores the resolved identity of the current request
type AccessContext struct {
	UserID uint
	Name   string
	Email  string
	Role   auth.Role
}

// IsParticipant returns true for participant accounts
func (ac *AccessContext) IsParticipant() bool {
	return ac.Role == auth.RoleParticipant
}

// IsLeader returns true for club leader accounts
func (ac *AccessContext) IsLeader() bool {
	return ac.Role == auth.RoleLeader
}

// IsUniversity returns true for university admin accounts
func (ac *AccessContext) IsUniversity() bool {
	return ac.Role == auth.RoleUniversity
}

// GetAccessContext retrieves the access context set by AuthMiddleware
func GetAccessContext(c *gin.Context) (AccessContext, bool) {
	raw, exists := c.Get("access_context")
	if !exists {
		return AccessContext{}, false
	}
	ctx, ok := raw.(AccessContext)
	return ctx, ok
}
