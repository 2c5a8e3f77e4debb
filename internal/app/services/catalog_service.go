package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/openedx/programs-admin/internal/app/models/dto"
	"github.com/openedx/programs-admin/internal/pkg/apperrors"
	"github.com/openedx/programs-admin/internal/pkg/validation"
)

// CatalogService manages the organizations and course codes programs are built from
type CatalogService interface {
	CreateOrganization(ctx context.Context, req *dto.CreateOrganizationRequest) (*models.Organization, error)
	ListOrganizations(ctx context.Context) ([]models.Organization, error)
	CreateCourseCode(ctx context.Context, req *dto.CreateCourseCodeRequest) (*models.CourseCode, error)
	ListCourseCodes(ctx context.Context, organizationID *int64) ([]models.CourseCode, error)
}

type catalogServiceImpl struct {
	organizationRepo OrganizationRepository
	courseCodeRepo   CourseCodeRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(organizationRepo OrganizationRepository, courseCodeRepo CourseCodeRepository) CatalogService {
	return &catalogServiceImpl{
		organizationRepo: organizationRepo,
		courseCodeRepo:   courseCodeRepo,
	}
}

func (s *catalogServiceImpl) CreateOrganization(ctx context.Context, req *dto.CreateOrganizationRequest) (*models.Organization, error) {
	org := &models.Organization{
		Key:         strings.TrimSpace(req.Key),
		DisplayName: strings.TrimSpace(req.DisplayName),
	}
	if !validation.NewStringValidation(org.Key).WithMaxLength(validation.OrganizationKeyMaxLength).Validate() {
		return nil, apperrors.NewValidationError("key", "key is required and must be at most 64 characters")
	}
	if !validation.NewStringValidation(org.DisplayName).WithMaxLength(validation.OrganizationDisplayNameMaxLength).Validate() {
		return nil, apperrors.NewValidationError("display_name", "display name is required and must be at most 128 characters")
	}

	if err := s.organizationRepo.Create(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *catalogServiceImpl) ListOrganizations(ctx context.Context) ([]models.Organization, error) {
	orgs, err := s.organizationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing organizations: %w", err)
	}
	return orgs, nil
}

// CreateCourseCode stores a course code under an existing organization
func (s *catalogServiceImpl) CreateCourseCode(ctx context.Context, req *dto.CreateCourseCodeRequest) (*models.CourseCode, error) {
	cc := &models.CourseCode{
		OrganizationID: req.OrganizationID,
		Key:            strings.TrimSpace(req.Key),
		DisplayName:    strings.TrimSpace(req.DisplayName),
	}
	if !validation.NewStringValidation(cc.Key).WithMaxLength(validation.CourseCodeKeyMaxLength).Validate() {
		return nil, apperrors.NewValidationError("key", "key is required and must be at most 64 characters")
	}
	if !validation.NewStringValidation(cc.DisplayName).WithMaxLength(validation.CourseCodeDisplayNameMaxLength).Validate() {
		return nil, apperrors.NewValidationError("display_name", "display name is required and must be at most 128 characters")
	}

	org, err := s.organizationRepo.GetByID(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}

	if err := s.courseCodeRepo.Create(ctx, cc); err != nil {
		return nil, err
	}
	cc.Organization = org
	return cc, nil
}

func (s *catalogServiceImpl) ListCourseCodes(ctx context.Context, organizationID *int64) ([]models.CourseCode, error) {
	codes, err := s.courseCodeRepo.List(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("error listing course codes: %w", err)
	}
	return codes, nil
}
