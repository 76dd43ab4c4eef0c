package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Deadline puts a per-request deadline on the request context so no store
// operation can outlive it.
func Deadline(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
