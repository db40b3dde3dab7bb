package middleware

import (
	"time"

	"github.com/dinepoll/server/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request through the global zap logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		)
	}
}

// Recovery converts any panic a handler fails to catch into a generic 500
// envelope. Pure safety net; controllers format their own errors.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", "panic", r, "path", c.Request.URL.Path)
				c.AbortWithStatusJSON(500, gin.H{"kind": "server_error", "content": "unknown"})
			}
		}()
		c.Next()
	}
}
