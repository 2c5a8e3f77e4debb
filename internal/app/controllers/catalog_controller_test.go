package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/openedx/programs-admin/internal/app/models/dto"
	"github.com/openedx/programs-admin/internal/pkg/apperrors"
)

type stubCatalog struct {
	orgFilter *int64
	err       error
}

func (s *stubCatalog) CreateOrganization(_ context.Context, req *dto.CreateOrganizationRequest) (*models.Organization, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Organization{ID: 1, Key: req.Key, DisplayName: req.DisplayName}, nil
}

func (s *stubCatalog) ListOrganizations(context.Context) ([]models.Organization, error) {
	return []models.Organization{{ID: 1, Key: "edX", DisplayName: "edX Inc."}}, nil
}

func (s *stubCatalog) CreateCourseCode(_ context.Context, req *dto.CreateCourseCodeRequest) (*models.CourseCode, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.CourseCode{ID: 4, OrganizationID: req.OrganizationID, Key: req.Key, DisplayName: req.DisplayName}, nil
}

func (s *stubCatalog) ListCourseCodes(_ context.Context, organizationID *int64) ([]models.CourseCode, error) {
	s.orgFilter = organizationID
	return []models.CourseCode{}, nil
}

func newCatalogRouter(svc *stubCatalog) *gin.Engine {
	c := NewCatalogController(svc)
	r := gin.New()
	r.GET("/api/v1/organizations", c.ListOrganizations)
	r.POST("/api/v1/organizations", c.CreateOrganization)
	r.GET("/api/v1/course_codes", c.ListCourseCodes)
	r.POST("/api/v1/course_codes", c.CreateCourseCode)
	return r
}

func TestOrganizations(t *testing.T) {
	svc := &stubCatalog{}
	r := newCatalogRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/v1/organizations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"key":"edX","display_name":"edX Inc.","created":"0001-01-01T00:00:00Z","modified":"0001-01-01T00:00:00Z"}]`,
		string(decode(t, w).Data))

	w = doJSON(t, r, http.MethodPost, "/api/v1/organizations", dto.CreateOrganizationRequest{Key: "MITx", DisplayName: "MIT"})
	assert.Equal(t, http.StatusCreated, w.Code)

	svc.err = apperrors.ErrOrganizationAlreadyExists
	w = doJSON(t, r, http.MethodPost, "/api/v1/organizations", dto.CreateOrganizationRequest{Key: "MITx", DisplayName: "MIT"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListCourseCodes_OrganizationFilter(t *testing.T) {
	svc := &stubCatalog{}
	r := newCatalogRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/v1/course_codes?organization_id=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.orgFilter)
	assert.Equal(t, int64(3), *svc.orgFilter)

	w = doJSON(t, r, http.MethodGet, "/api/v1/course_codes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.orgFilter)

	w = doJSON(t, r, http.MethodGet, "/api/v1/course_codes?organization_id=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCourseCode_UnknownOrganization(t *testing.T) {
	svc := &stubCatalog{err: apperrors.NewResourceNotFoundError("organization 9 not found")}

	w := doJSON(t, newCatalogRouter(svc), http.MethodPost, "/api/v1/course_codes",
		dto.CreateCourseCodeRequest{OrganizationID: 9, Key: "DemoX", DisplayName: "Demo"})

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "organization 9 not found", decode(t, w).Error.Message)
}
