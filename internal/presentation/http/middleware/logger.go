package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger tags every request with an ID and writes one access line
// after the handler chain finishes. Replayed idempotent checkouts are
// flagged so a till operator retry is distinguishable from a new sale in
// the log.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		fullPath := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			fullPath += "?" + raw
		}

		c.Next()

		line := fmt.Sprintf("[%s] %s %s | %d | %v | %s",
			requestID[:8],
			c.Request.Method,
			fullPath,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
		)
		if c.Writer.Header().Get("X-Idempotency-Replayed") != "" {
			line += " | replayed"
		}
		log.Print(line)

		for _, e := range c.Errors {
			log.Printf("[%s] error: %v", requestID[:8], e.Err)
		}
	}
}
