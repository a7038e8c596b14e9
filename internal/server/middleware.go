package server

import (
	"net/http"
	"strings"
	"time"

	"auction-client/internal/auctionerrors"
	"auction-client/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// SessionMiddleware resolves a bearer token to a user ID via the given
// token table and stores it in the request context. Requests without a
// recognized token are rejected; this guards the bid submission route only.
func SessionMiddleware(tokens map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			utils.JSONError(c, http.StatusUnauthorized, auctionerrors.ErrNoSession, "authentication required")
			c.Abort()
			return
		}

		userID, ok := tokens[token]
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, auctionerrors.ErrNoSession, "authentication required")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
