// Package middleware holds the Gin middleware shared by all routes.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voralis/catalogd/internal/logger"
)

// RequestLogger logs every request with method, path, status and duration.
// Health probes are skipped to keep the log readable.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/api/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"size", c.Writer.Size(),
			"ip", c.ClientIP(),
		)
	}
}
