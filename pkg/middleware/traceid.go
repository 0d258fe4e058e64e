package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	traceIDContextKey = "trace_id"
	traceIDHeader     = "X-Trace-ID"
)

// TraceIDMiddleware tags each request with a fresh id. The response envelope
// echoes it and the header lets a client report tie back to server logs.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(traceIDContextKey, id)
		c.Header(traceIDHeader, id)
		c.Next()
	}
}
