package middleware

import (
	"time"

	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one structured line per request. The level follows
// the status class.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		zl := log.Zerolog()
		evt := zl.Info()
		if status >= 500 {
			evt = zl.Error()
		} else if status >= 400 {
			evt = zl.Warn()
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		evt.
			Str("method", c.Request.Method).
			Str("route", route).
			Int("status", status).
			Dur("duration_ms", time.Since(start)).
			Int("bytes_sent", c.Writer.Size()).
			Str("user_id", c.GetString(ContextUserID)).
			Msg("request")
	}
}
