package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openedx/programs-admin/internal/app/models/dto"
	"github.com/openedx/programs-admin/internal/pkg/apperrors"
	"github.com/openedx/programs-admin/internal/pkg/logger"
)

type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// Specific sentinels come before the generic ones they may wrap
var errorMappings = []errorMapping{
	{apperrors.ErrProgramNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Program not found"},
	{apperrors.ErrOrganizationNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Organization not found"},
	{apperrors.ErrCourseCodeNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course code not found"},
	{apperrors.ErrProgramCourseCodeNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Program course code not found"},
	{apperrors.ErrRunModeNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Run mode not found"},
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},

	{apperrors.ErrProgramAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, ""},
	{apperrors.ErrOrganizationAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, ""},
	{apperrors.ErrCourseCodeAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, ""},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrProgramOrganizationExists, http.StatusConflict, dto.ErrorCodeConflict, ""},
	{apperrors.ErrCourseCodeInOtherProgram, http.StatusConflict, dto.ErrorCodeConflict, ""},
	{apperrors.ErrRunModeDuplicate, http.StatusConflict, dto.ErrorCodeConflict, ""},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},

	{apperrors.ErrCourseCodeOrgMismatch, http.StatusBadRequest, dto.ErrorCodeValidationFailed, ""},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Bad request"},

	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Token not found"},
	{apperrors.ErrMissingUsername, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
}

// HandleAPIError handles common API errors and returns appropriate responses. A CustomError
// message and field are passed on to the client; the message of a bare sentinel is used
// when the mapping has none.
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}

		message := m.message
		var detail *dto.ErrorDetail
		var custom *apperrors.CustomError
		if errors.As(err, &custom) {
			message = custom.Error()
			detail = dto.NewErrorDetail(m.code, message).WithField(custom.Field())
		} else {
			if message == "" {
				message = m.target.Error()
			}
			detail = dto.NewErrorDetail(m.code, message)
		}

		c.AbortWithStatusJSON(m.status, dto.NewErrorResponse(detail))
		return
	}

	logger.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("requestID", c.GetString(RequestIDKey)).
		Msg("Unhandled error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
}
