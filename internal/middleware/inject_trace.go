// Package middleware holds the gin middlewares shared by all route groups.
package middleware

import (
	"github.com/gin-gonic/gin"

	"voyago/internal/utils"
)

// InjectTrace assigns a trace id to the request and echoes it in the
// X-Trace-Id response header.
func InjectTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId := utils.GenerateTraceId()
		c.Set(utils.TraceIdKey.String(), traceId)
		c.Header("X-Trace-Id", traceId)
		c.Next()
	}
}
