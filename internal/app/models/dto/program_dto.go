package dto

import (
	"github.com/openedx/programs-admin/internal/app/models"
)

// CreateProgramRequest represents program creation data
type CreateProgramRequest struct {
	Name          string `json:"name" binding:"required,max=64" example:"Data Science Fundamentals"`
	Subtitle      string `json:"subtitle" binding:"required,max=255" example:"A four course sequence"`
	MarketingSlug string `json:"marketing_slug" binding:"omitempty,max=255" example:"data-science-fundamentals"`
	Category      string `json:"category" binding:"required,oneof=XSeries MicroMasters" example:"XSeries"`
	Status        string `json:"status" binding:"omitempty,oneof=unpublished active retired deleted" example:"unpublished"`
}

// ToModel converts the request into a Program, defaulting status to unpublished.
func (r CreateProgramRequest) ToModel() *models.Program {
	status := models.ProgramStatus(r.Status)
	if status == "" {
		status = models.ProgramStatusUnpublished
	}
	return &models.Program{
		Name:          r.Name,
		Subtitle:      r.Subtitle,
		MarketingSlug: r.MarketingSlug,
		Category:      models.ProgramCategory(r.Category),
		Status:        status,
	}
}

// UpdateProgramRequest is a partial update; omitted attributes stay untouched
type UpdateProgramRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=64"`
	Subtitle      *string `json:"subtitle" binding:"omitempty,max=255"`
	MarketingSlug *string `json:"marketing_slug" binding:"omitempty,max=255"`
	Category      *string `json:"category" binding:"omitempty,oneof=XSeries MicroMasters"`
	Status        *string `json:"status" binding:"omitempty,oneof=unpublished active retired deleted"`
}

// ToPatch converts the request into a ProgramPatch
func (r UpdateProgramRequest) ToPatch() models.ProgramPatch {
	patch := models.ProgramPatch{
		Name:          r.Name,
		Subtitle:      r.Subtitle,
		MarketingSlug: r.MarketingSlug,
	}
	if r.Category != nil {
		c := models.ProgramCategory(*r.Category)
		patch.Category = &c
	}
	if r.Status != nil {
		s := models.ProgramStatus(*r.Status)
		patch.Status = &s
	}
	return patch
}

// AssociateOrganizationRequest links an organization to a program
type AssociateOrganizationRequest struct {
	OrganizationID int64 `json:"organization_id" binding:"required,gt=0" example:"1"`
}

// AddProgramCourseCodeRequest appends a course code to a program
type AddProgramCourseCodeRequest struct {
	CourseCodeID int64 `json:"course_code_id" binding:"required,gt=0" example:"3"`
}

// CreateRunModeRequest adds a run/mode to a course code inside a program
type CreateRunModeRequest struct {
	CourseKey string  `json:"course_key" binding:"required,max=255" example:"course-v1:edX+DemoX+2016_T1"`
	ModeSlug  string  `json:"mode_slug" binding:"required,max=64" example:"verified"`
	SKU       *string `json:"sku" binding:"omitempty,max=255" example:"ABC123"`
	LMSURL    *string `json:"lms_url" binding:"omitempty,max=1024"`
	StartDate string  `json:"start_date" binding:"required" example:"2016-09-01"`
}

// ProgramListResponse represents one page of programs
type ProgramListResponse struct {
	Programs   []*models.Program `json:"programs"`
	Pagination PaginationInfo    `json:"pagination"`
}
