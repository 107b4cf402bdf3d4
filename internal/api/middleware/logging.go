package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger logs one line per request with a generated request id.
// Websocket upgrades are skipped; the hub logs connects itself.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Upgrade") == "websocket" {
			c.Next()
			return
		}

		requestID := uuid.New().String()[:8]
		c.Set("request_id", requestID)
		start := time.Now()

		c.Next()

		log.Printf("[%s] %s %s %d %v", requestID, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
