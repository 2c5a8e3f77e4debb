package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openedx/programs-admin/internal/app/models/dto"
	"github.com/openedx/programs-admin/internal/pkg/apperrors"
)

func serveError(err error) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/fail", func(c *gin.Context) { HandleAPIError(c, err) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	return w
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
		field   string
	}{
		{
			name:    "program not found",
			err:     fmt.Errorf("loading: %w", apperrors.ErrProgramNotFound),
			status:  http.StatusNotFound,
			code:    dto.ErrorCodeResourceNotFound,
			message: "Program not found",
		},
		{
			name:    "custom not found keeps its message",
			err:     apperrors.NewResourceNotFoundError("organization 9 not found"),
			status:  http.StatusNotFound,
			code:    dto.ErrorCodeResourceNotFound,
			message: "organization 9 not found",
		},
		{
			name:    "validation carries the field",
			err:     apperrors.NewValidationError("name", "name must be at most 64 characters"),
			status:  http.StatusBadRequest,
			code:    dto.ErrorCodeValidationFailed,
			message: "name must be at most 64 characters",
			field:   "name",
		},
		{
			name:    "duplicate run mode uses the sentinel text",
			err:     apperrors.ErrRunModeDuplicate,
			status:  http.StatusConflict,
			code:    dto.ErrorCodeConflict,
			message: apperrors.ErrRunModeDuplicate.Error(),
		},
		{
			name:    "program exists",
			err:     apperrors.ErrProgramAlreadyExists,
			status:  http.StatusConflict,
			code:    dto.ErrorCodeResourceAlreadyExists,
			message: apperrors.ErrProgramAlreadyExists.Error(),
		},
		{
			name:    "organization mismatch",
			err:     apperrors.ErrCourseCodeOrgMismatch,
			status:  http.StatusBadRequest,
			code:    dto.ErrorCodeValidationFailed,
			message: apperrors.ErrCourseCodeOrgMismatch.Error(),
		},
		{
			name:    "forbidden",
			err:     apperrors.NewForbiddenError("user account is inactive"),
			status:  http.StatusForbidden,
			code:    dto.ErrorCodeForbidden,
			message: "user account is inactive",
		},
		{
			name:    "unknown",
			err:     fmt.Errorf("connection reset"),
			status:  http.StatusInternalServerError,
			code:    dto.ErrorCodeInternalServer,
			message: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveError(tt.err)

			require.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
			assert.Equal(t, tt.field, resp.Error.Field)
		})
	}
}

func TestBindJSON_ReportsFieldErrors(t *testing.T) {
	r := gin.New()
	r.POST("/programs", func(c *gin.Context) {
		var req dto.CreateProgramRequest
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/programs",
		stringsReader(`{"name":"Data Science","subtitle":"x","category":"Nanodegree"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
	assert.Equal(t, "category", resp.Error.Field)
}
