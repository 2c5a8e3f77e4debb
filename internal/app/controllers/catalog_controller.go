package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openedx/programs-admin/internal/app/models/dto"
	"github.com/openedx/programs-admin/internal/app/services"
	"github.com/openedx/programs-admin/internal/middleware"
)

// CatalogController serves organizations and course codes
type CatalogController struct {
	catalogService services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// ListOrganizations godoc
// @Summary List organizations
// @Tags organizations
// @Produce json
// @Security JWTAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Organization}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /organizations [get]
func (c *CatalogController) ListOrganizations(ctx *gin.Context) {
	orgs, err := c.catalogService.ListOrganizations(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(orgs, ""))
}

// CreateOrganization godoc
// @Summary Create an organization
// @Tags organizations
// @Accept json
// @Produce json
// @Security JWTAuth
// @Param request body dto.CreateOrganizationRequest true "Organization"
// @Success 201 {object} dto.APIResponse{data=models.Organization}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Key or display name already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /organizations [post]
func (c *CatalogController) CreateOrganization(ctx *gin.Context) {
	var req dto.CreateOrganizationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	org, err := c.catalogService.CreateOrganization(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(org, "Organization created successfully"))
}

// ListCourseCodes godoc
// @Summary List course codes
// @Tags course codes
// @Produce json
// @Security JWTAuth
// @Param organization_id query int false "Only course codes of this organization"
// @Success 200 {object} dto.APIResponse{data=[]models.CourseCode}
// @Failure 400 {object} dto.ErrorResponse "Invalid organization ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /course_codes [get]
func (c *CatalogController) ListCourseCodes(ctx *gin.Context) {
	var organizationID *int64
	if raw := ctx.Query("organization_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid organization ID").
				WithField("organization_id")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		organizationID = &id
	}

	codes, err := c.catalogService.ListCourseCodes(ctx.Request.Context(), organizationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(codes, ""))
}

// CreateCourseCode godoc
// @Summary Create a course code
// @Tags course codes
// @Accept json
// @Produce json
// @Security JWTAuth
// @Param request body dto.CreateCourseCodeRequest true "Course code"
// @Success 201 {object} dto.APIResponse{data=models.CourseCode}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Organization not found"
// @Failure 409 {object} dto.ErrorResponse "Key already in use for the organization"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /course_codes [post]
func (c *CatalogController) CreateCourseCode(ctx *gin.Context) {
	var req dto.CreateCourseCodeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	cc, err := c.catalogService.CreateCourseCode(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(cc, "Course code created successfully"))
}
