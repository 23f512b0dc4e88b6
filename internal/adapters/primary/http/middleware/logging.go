package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// OutcomeKey is the gin context key where handlers record the resolution outcome.
const OutcomeKey = "resolution_outcome"

func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := log.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString(RequestIDKey),
		}
		if outcome, ok := c.Get(OutcomeKey); ok {
			fields["outcome"] = outcome
		}
		log.WithFields(fields).Info("request completed")
	}
}
