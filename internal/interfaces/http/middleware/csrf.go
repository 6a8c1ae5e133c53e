package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CSRFHeader carries the anti-forgery token
const CSRFHeader = "X-CSRF-Token"

// CSRF rejects state-changing requests that do not echo the client's
// current anti-forgery token
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		// A client without a cookie cannot hold a token yet
		if IsFreshClient(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Missing or stale anti-forgery token",
			})
			return
		}

		ws := GetWorkspace(c)
		if ws == nil || !ws.Auth.VerifyToken(c.GetHeader(CSRFHeader)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Missing or stale anti-forgery token",
			})
			return
		}

		c.Next()
	}
}
