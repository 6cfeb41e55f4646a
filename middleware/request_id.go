package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
)

// RequestID tags every request with an id (reusing a client supplied one)
// and logs the outcome. Health probes are not logged.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		if c.Request.URL.Path != "/health" {
			log.Printf("[%s] %s %s -> %d (%s)", id, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
		}
	}
}

// GetRequestID returns the id set by RequestID, or "" outside of it.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
