package middleware

import (
	"github.com/gin-gonic/gin"

	"voyago/internal/utils"
)

// LogRequest logs every incoming request with its trace id.
func LogRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		message := "Request received: " + c.Request.Method + " " + c.Request.URL.Path
		utils.LogMessageWithFields(c, "info", message)
		c.Next()
	}
}
