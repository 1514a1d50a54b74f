package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unilib/backend/internal/entities"
)

// ContextKeyRole carries the authenticated role through the Gin context.
const ContextKeyRole = "auth_role"

// RequireAuth returns a Gin middleware that rejects requests without a
// valid session with a 401 JSON response.
func RequireAuth(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions.GetUserID(c.Request) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		c.Set(ContextKeyRole, sessions.GetUserRole(c.Request))
		c.Next()
	}
}

// RequireAdmin returns a Gin middleware that additionally requires the
// admin role. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ContextKeyRole)
		if !ok || role != entities.UserRoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "admin access required",
			})
			return
		}
		c.Next()
	}
}
