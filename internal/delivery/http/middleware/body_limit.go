package middleware

import (
	"net/http"

	"go-contact-relay/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps request bodies before they reach any handler. Contact
// submissions max out around 1.5 KB of JSON, so 10 KB leaves ample room.
const MaxBodyBytes = 10 << 10

// BodyLimit rejects oversized bodies at the transport layer. A declared
// Content-Length over the cap gets an immediate 413; chunked bodies are
// capped by MaxBytesReader, which surfaces as a bind error downstream.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, "Request body too large")
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
