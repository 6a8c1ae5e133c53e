// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/canteen-backend/internal/domain/user"
)

// UserKey is the gin context key of the signed-in user
const UserKey = "user"

// RequireUser rejects requests from clients without a live session
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsFreshClient(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}

		ws := GetWorkspace(c)
		if ws == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}

		u, ok := ws.Auth.CurrentUser(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}

		c.Set(UserKey, u)
		c.Next()
	}
}

// GetUserFromContext extracts the user stored by RequireUser
func GetUserFromContext(c *gin.Context) (*user.User, bool) {
	u, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	return u.(*user.User), true
}
