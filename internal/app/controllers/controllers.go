// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openedx/programs-admin/internal/app/models/dto"
)

// parseIDParam reads a positive integer path parameter. It writes a 400 and returns false
// when the parameter is malformed.
func parseIDParam(ctx *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label+" ID").
			WithField(name).
			WithDetails(label + " ID must be a positive number")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
