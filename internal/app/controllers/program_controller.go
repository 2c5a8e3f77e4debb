package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/openedx/programs-admin/internal/app/models/dto"
	"github.com/openedx/programs-admin/internal/app/services"
	"github.com/openedx/programs-admin/internal/middleware"
	"github.com/openedx/programs-admin/internal/pkg/helpers"
)

// ProgramController serves the program REST API
type ProgramController struct {
	programService services.ProgramService
}

// NewProgramController creates a new ProgramController
func NewProgramController(programService services.ProgramService) *ProgramController {
	return &ProgramController{
		programService: programService,
	}
}

// ListPrograms godoc
// @Summary List programs
// @Description Returns one page of programs ordered by name, optionally filtered by status and category
// @Tags programs
// @Produce json
// @Security JWTAuth
// @Param status query string false "Filter by status" Enums(unpublished, active, retired, deleted)
// @Param category query string false "Filter by category" Enums(XSeries, MicroMasters)
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.ProgramListResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs [get]
func (c *ProgramController) ListPrograms(ctx *gin.Context) {
	var filter models.ProgramFilter
	if status := ctx.Query("status"); status != "" {
		s := models.ProgramStatus(status)
		filter.Status = &s
	}
	if category := ctx.Query("category"); category != "" {
		cat := models.ProgramCategory(category)
		filter.Category = &cat
	}
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.programService.ListPrograms(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// CreateProgram godoc
// @Summary Create a program
// @Description Creates a program. The marketing slug is derived from the name when omitted.
// @Tags programs
// @Accept json
// @Produce json
// @Security JWTAuth
// @Param request body dto.CreateProgramRequest true "Program"
// @Success 201 {object} dto.APIResponse{data=models.Program}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 409 {object} dto.ErrorResponse "Name or marketing slug already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs [post]
func (c *ProgramController) CreateProgram(ctx *gin.Context) {
	var req dto.CreateProgramRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	program, err := c.programService.CreateProgram(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(program, "Program created successfully"))
}

// GetProgram godoc
// @Summary Get a program
// @Description Returns a program with its organizations, course codes and run modes
// @Tags programs
// @Produce json
// @Security JWTAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=models.Program}
// @Failure 400 {object} dto.ErrorResponse "Invalid program ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id} [get]
func (c *ProgramController) GetProgram(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "program")
	if !ok {
		return
	}

	program, err := c.programService.GetProgram(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(program, ""))
}

// UpdateProgram godoc
// @Summary Partially update a program
// @Description Changes only the attributes present in the body
// @Tags programs
// @Accept json
// @Produce json
// @Security JWTAuth
// @Param id path int true "Program ID"
// @Param request body dto.UpdateProgramRequest true "Changed attributes"
// @Success 200 {object} dto.APIResponse{data=models.Program}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 409 {object} dto.ErrorResponse "Name or marketing slug already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id} [patch]
func (c *ProgramController) UpdateProgram(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "program")
	if !ok {
		return
	}

	var req dto.UpdateProgramRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	program, err := c.programService.UpdateProgram(ctx.Request.Context(), id, req.ToPatch())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(program, "Program updated successfully"))
}

// AssociateOrganization godoc
// @Summary Associate an organization with a program
// @Description A program can be offered by a single organization
// @Tags programs
// @Accept json
// @Produce json
// @Security JWTAuth
// @Param id path int true "Program ID"
// @Param request body dto.AssociateOrganizationRequest true "Organization"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Program or organization not found"
// @Failure 409 {object} dto.ErrorResponse "Program already has an organization"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/organizations [post]
func (c *ProgramController) AssociateOrganization(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "program")
	if !ok {
		return
	}

	var req dto.AssociateOrganizationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.programService.AssociateOrganization(ctx.Request.Context(), id, req.OrganizationID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(nil, "Organization associated successfully"))
}

// AvailableCourseCodes godoc
// @Summary Course codes that can be added to a program
// @Description Course codes of the program's organization not yet placed in any program
// @Tags programs
// @Produce json
// @Security JWTAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=[]models.CourseCode}
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/course_codes/available [get]
func (c *ProgramController) AvailableCourseCodes(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "program")
	if !ok {
		return
	}

	codes, err := c.programService.AvailableCourseCodes(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(codes, ""))
}

// AddCourseCode godoc
// @Summary Add a course code to a program
// @Description Appends the course code after the existing ones
// @Tags programs
// @Accept json
// @Produce json
// @Security JWTAuth
// @Param id path int true "Program ID"
// @Param request body dto.AddProgramCourseCodeRequest true "Course code"
// @Success 201 {object} dto.APIResponse{data=models.ProgramCourseCode}
// @Failure 400 {object} dto.ErrorResponse "Course code belongs to another organization"
// @Failure 404 {object} dto.ErrorResponse "Program or course code not found"
// @Failure 409 {object} dto.ErrorResponse "Course code already in a program"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/course_codes [post]
func (c *ProgramController) AddCourseCode(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "program")
	if !ok {
		return
	}

	var req dto.AddProgramCourseCodeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	pcc, err := c.programService.AddCourseCode(ctx.Request.Context(), id, req.CourseCodeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(pcc, "Course code added successfully"))
}

// RemoveCourseCode godoc
// @Summary Remove a course code from a program
// @Description Removes the placement and its run modes; the course code itself is kept
// @Tags programs
// @Produce json
// @Security JWTAuth
// @Param id path int true "Program ID"
// @Param pccId path int true "Program course code ID"
// @Success 204 "Removed"
// @Failure 404 {object} dto.ErrorResponse "Program course code not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/course_codes/{pccId} [delete]
func (c *ProgramController) RemoveCourseCode(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "program")
	if !ok {
		return
	}
	pccID, ok := parseIDParam(ctx, "pccId", "program course code")
	if !ok {
		return
	}

	if err := c.programService.RemoveCourseCode(ctx.Request.Context(), id, pccID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddRunMode godoc
// @Summary Add a run mode to a program course code
// @Tags programs
// @Accept json
// @Produce json
// @Security JWTAuth
// @Param id path int true "Program ID"
// @Param pccId path int true "Program course code ID"
// @Param request body dto.CreateRunModeRequest true "Run mode"
// @Success 201 {object} dto.APIResponse{data=models.RunMode}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Program course code not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate run mode"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/course_codes/{pccId}/run_modes [post]
func (c *ProgramController) AddRunMode(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "program")
	if !ok {
		return
	}
	pccID, ok := parseIDParam(ctx, "pccId", "program course code")
	if !ok {
		return
	}

	var req dto.CreateRunModeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	runMode, err := c.programService.AddRunMode(ctx.Request.Context(), id, pccID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(runMode, "Run mode added successfully"))
}

// RemoveRunMode godoc
// @Summary Remove a run mode from a program
// @Tags programs
// @Produce json
// @Security JWTAuth
// @Param id path int true "Program ID"
// @Param runModeId path int true "Run mode ID"
// @Success 204 "Removed"
// @Failure 404 {object} dto.ErrorResponse "Run mode not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/run_modes/{runModeId} [delete]
func (c *ProgramController) RemoveRunMode(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "program")
	if !ok {
		return
	}
	runModeID, ok := parseIDParam(ctx, "runModeId", "run mode")
	if !ok {
		return
	}

	if err := c.programService.RemoveRunMode(ctx.Request.Context(), id, runModeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
