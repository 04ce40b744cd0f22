package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the HTTP header carrying the request ID.
const RequestIDHeader = "X-Request-ID"

// ContextKey type for context keys to avoid collisions.
type ContextKey string

// RequestIDKey is the context key for request ID.
const RequestIDKey ContextKey = "request_id"

const maxRequestIDLength = 128

// RequestID tags every request with an ID, reusing the client's X-Request-ID
// when it is short printable ASCII and generating a UUID otherwise.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}

		c.Set(string(RequestIDKey), requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID retrieves the request ID from the gin context.
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(string(RequestIDKey)); exists {
		if requestID, ok := id.(string); ok {
			return requestID
		}
	}
	return ""
}
