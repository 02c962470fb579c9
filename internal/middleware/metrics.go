package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestRecorder receives per-request measurements.
type RequestRecorder interface {
	RecordRequest(method, route string, status int, d time.Duration)
}

// Metrics records every request under its route template so that ids in
// paths do not explode label cardinality.
func Metrics(rec RequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		rec.RecordRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
