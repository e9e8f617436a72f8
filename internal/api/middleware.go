package api

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// requestID tags every request with an id, echoing the caller's when present, and
// logs failed requests with it.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()

		if status := c.Writer.Status(); status >= 400 {
			log.Printf("%s %s %s -> %d (%v) %s", id, c.Request.Method, c.Request.URL.Path, status, time.Since(start), c.Errors.String())
		}
	}
}
