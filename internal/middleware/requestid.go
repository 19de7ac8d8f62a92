package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key under which the request ID is stored.
const RequestIDKey = "request_id"

// RequestID injects a UUID per request, stored in the context and echoed
// back in the X-Request-ID response header so clients and logs can be
// correlated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(RequestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
