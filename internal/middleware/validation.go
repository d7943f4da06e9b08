package middleware

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"

	"voyago/internal/schemas"
	"voyago/internal/utils"
)

// ValidateAndSanitizeStruct binds the JSON body into a fresh instance of the
// given request type, sanitizes it and validates it. The sanitized payload is
// stored in the context under SanitizedPayloadKey. The obj argument is only a
// template; a new instance is allocated per request so concurrent requests
// never share state.
func ValidateAndSanitizeStruct(obj interface{}) gin.HandlerFunc {
	objType := reflect.TypeOf(obj).Elem()

	return func(c *gin.Context) {
		payload := reflect.New(objType).Interface()

		if err := c.ShouldBindJSON(payload); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, &schemas.ErrorDTO{Error: *schemas.BadRequest})
			return
		}

		v := utils.GetValidator()
		v.SanitizeStruct(payload)

		if err := v.Validate.Struct(payload); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, &schemas.ErrorDTO{Error: *schemas.BadRequest})
			return
		}

		c.Set(utils.SanitizedPayloadKey.String(), payload)
		c.Next()
	}
}
