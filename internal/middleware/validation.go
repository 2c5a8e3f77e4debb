package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openedx/programs-admin/internal/app/models/dto"
)

// BindJSON binds and validates the request body into obj using its binding tags. On failure
// it writes a 400 listing the failed fields and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

// BindQuery is BindJSON for query string parameters
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}
