// middleware gates the job API behind a shared-secret service token -
// there are no per-user claims to extract, so RequireAuth only needs
// to confirm the token validates.
package apiserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireAuth rejects any request without a valid token signed by svc,
// taken from a "Bearer <token>" Authorization header or, when no
// Authorization header is present, from the "token" query parameter.
func RequireAuth(svc *AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		if err := svc.ValidateToken(token); err != nil {
			status := http.StatusUnauthorized
			c.JSON(status, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		// The websocket subscription endpoint cannot set headers from a
		// browser WebSocket client, so it falls back to a query
		// parameter.
		return c.Query("token")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// CORS is permissive by default, since this is a service-token-gated
// API, not a cookie-based one.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
