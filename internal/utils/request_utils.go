package utils

import (
	"github.com/gin-gonic/gin"

	"voyago/internal/schemas"
)

// WriteAndLogResponse writes the response object as JSON with the given
// status code.
func WriteAndLogResponse(c *gin.Context, response interface{}, statusCode int) {
	LogMessageWithFields(c, "debug", "Returning response")
	c.JSON(statusCode, response)
}

// WriteAndLogError logs the underlying error and writes the catalog error
// with the given status code.
func WriteAndLogError(c *gin.Context, customErr *schemas.CustomError, statusCode int, err error) {
	LogMessageWithFields(c, "error", "Error occurred: "+err.Error())
	LogMessageWithFields(c, "error", "Returning "+customErr.Code+" / "+customErr.Message)
	c.JSON(statusCode, &schemas.ErrorDTO{Error: *customErr})
}
