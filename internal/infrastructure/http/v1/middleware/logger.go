package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"dukkan/pkg/logger"
)

// Logger middleware logs HTTP requests with timing and status.
// Probe endpoints are logged at debug level to keep the info log readable.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		write := log.WithContext(c.Request.Context()).Infow
		if strings.HasPrefix(path, "/health/") {
			write = log.WithContext(c.Request.Context()).Debugw
		}

		write("http request",
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"status", status,
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
			"error", c.Errors.ByType(gin.ErrorTypePrivate).String(),
		)
	}
}
