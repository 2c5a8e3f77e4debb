package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/openedx/programs-admin/internal/app/models/dto"
	"github.com/openedx/programs-admin/internal/pkg/apperrors"
)

func newProgramRouter(svc *stubPrograms) *gin.Engine {
	c := NewProgramController(svc)
	r := gin.New()
	g := r.Group("/api/v1/programs")
	g.GET("", c.ListPrograms)
	g.POST("", c.CreateProgram)
	g.GET("/:id", c.GetProgram)
	g.PATCH("/:id", c.UpdateProgram)
	g.POST("/:id/organizations", c.AssociateOrganization)
	g.GET("/:id/course_codes/available", c.AvailableCourseCodes)
	g.POST("/:id/course_codes", c.AddCourseCode)
	g.DELETE("/:id/course_codes/:pccId", c.RemoveCourseCode)
	g.POST("/:id/course_codes/:pccId/run_modes", c.AddRunMode)
	g.DELETE("/:id/run_modes/:runModeId", c.RemoveRunMode)
	return r
}

func TestListPrograms_PassesFilterAndPage(t *testing.T) {
	svc := newStubPrograms()
	w := doJSON(t, newProgramRouter(svc), http.MethodGet, "/api/v1/programs?status=active&category=XSeries&page=2&size=5", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.filter.Status)
	require.NotNil(t, svc.filter.Category)
	assert.Equal(t, models.ProgramStatusActive, *svc.filter.Status)
	assert.Equal(t, models.ProgramCategoryXSeries, *svc.filter.Category)
	assert.Equal(t, 2, svc.page)
	assert.Equal(t, 5, svc.size)

	var list dto.ProgramListResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &list))
	require.Len(t, list.Programs, 1)
	assert.Equal(t, "Data Science", list.Programs[0].Name)
}

func TestGetProgram(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		code   dto.ErrorCode
	}{
		{name: "found", path: "/api/v1/programs/7", status: http.StatusOK},
		{name: "missing", path: "/api/v1/programs/99", status: http.StatusNotFound, code: dto.ErrorCodeResourceNotFound},
		{name: "malformed id", path: "/api/v1/programs/seven", status: http.StatusBadRequest, code: dto.ErrorCodeValidationFailed},
		{name: "zero id", path: "/api/v1/programs/0", status: http.StatusBadRequest, code: dto.ErrorCodeValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, newProgramRouter(newStubPrograms()), http.MethodGet, tt.path, nil)

			require.Equal(t, tt.status, w.Code)
			env := decode(t, w)
			if tt.status == http.StatusOK {
				var p models.Program
				require.NoError(t, json.Unmarshal(env.Data, &p))
				assert.Equal(t, "data-science", p.MarketingSlug)
				return
			}
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestCreateProgram(t *testing.T) {
	r := newProgramRouter(newStubPrograms())

	w := doJSON(t, r, http.MethodPost, "/api/v1/programs", dto.CreateProgramRequest{
		Name: "Supply Chain", Subtitle: "Five courses", Category: "MicroMasters",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var p models.Program
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &p))
	assert.Equal(t, int64(8), p.ID)
	assert.Equal(t, models.ProgramStatusUnpublished, p.Status)

	w = doJSON(t, r, http.MethodPost, "/api/v1/programs", map[string]string{"subtitle": "no name"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, decode(t, w).Error.Code)
}

func TestCreateProgram_Conflict(t *testing.T) {
	svc := newStubPrograms()
	svc.err = apperrors.ErrProgramAlreadyExists

	w := doJSON(t, newProgramRouter(svc), http.MethodPost, "/api/v1/programs", dto.CreateProgramRequest{
		Name: "Data Science", Subtitle: "again", Category: "XSeries",
	})

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrorCodeResourceAlreadyExists, decode(t, w).Error.Code)
}

func TestUpdateProgram_OnlyPresentAttributes(t *testing.T) {
	svc := newStubPrograms()

	w := doJSON(t, newProgramRouter(svc), http.MethodPatch, "/api/v1/programs/7", map[string]string{"subtitle": "Three courses"})

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.patches, 1)
	assert.Nil(t, svc.patches[0].Name)
	require.NotNil(t, svc.patches[0].Subtitle)
	assert.Equal(t, "Three courses", *svc.patches[0].Subtitle)
	assert.Equal(t, "", svc.origins[0], "API edits carry no page origin")
}

func TestUpdateProgram_RejectsLongName(t *testing.T) {
	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}

	w := doJSON(t, newProgramRouter(newStubPrograms()), http.MethodPatch, "/api/v1/programs/7", map[string]string{"name": string(long)})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "name", decode(t, w).Error.Field)
}

func TestCourseCodeAndRunModeRoutes(t *testing.T) {
	svc := newStubPrograms()
	r := newProgramRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/programs/7/organizations", dto.AssociateOrganizationRequest{OrganizationID: 1})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/programs/7/course_codes/available", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/programs/7/course_codes", dto.AddProgramCourseCodeRequest{CourseCodeID: 4})
	require.Equal(t, http.StatusCreated, w.Code)
	var pcc models.ProgramCourseCode
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &pcc))
	assert.Equal(t, int64(4), pcc.CourseCodeID)

	w = doJSON(t, r, http.MethodPost, "/api/v1/programs/7/course_codes/30/run_modes", dto.CreateRunModeRequest{
		CourseKey: "course-v1:edX+DemoX+2016_T1", ModeSlug: "verified", StartDate: "2016-09-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.runModes, 1)
	assert.Nil(t, svc.runModes[0].SKU)

	w = doJSON(t, r, http.MethodPost, "/api/v1/programs/7/course_codes/30/run_modes", map[string]string{"course_key": "k"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/programs/7/course_codes/30", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []int64{30}, svc.removed)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/programs/7/run_modes/40", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/programs/7/run_modes/x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "runModeId", decode(t, w).Error.Field)
}
