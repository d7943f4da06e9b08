package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// SanitizePath strips HTML from the request path before routing.
func SanitizePath() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()
	return func(c *gin.Context) {
		c.Request.URL.Path = policy.Sanitize(c.Request.URL.Path)
		c.Next()
	}
}
