package dto

// CreateOrganizationRequest represents organization creation data
type CreateOrganizationRequest struct {
	Key         string `json:"key" binding:"required,max=64" example:"edX"`
	DisplayName string `json:"display_name" binding:"required,max=128" example:"edX Inc."`
}

// CreateCourseCodeRequest represents course code creation data
type CreateCourseCodeRequest struct {
	OrganizationID int64  `json:"organization_id" binding:"required,gt=0" example:"1"`
	Key            string `json:"key" binding:"required,max=64" example:"DemoX"`
	DisplayName    string `json:"display_name" binding:"required,max=128" example:"Demo Course"`
}
