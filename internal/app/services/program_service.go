package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/openedx/programs-admin/internal/app/models/dto"
	"github.com/openedx/programs-admin/internal/pkg/apperrors"
	"github.com/openedx/programs-admin/internal/pkg/helpers"
	"github.com/openedx/programs-admin/internal/pkg/logger"
	"github.com/openedx/programs-admin/internal/pkg/validation"
)

// ProgramService defines the interface for program operations
type ProgramService interface {
	CreateProgram(ctx context.Context, req *dto.CreateProgramRequest) (*models.Program, error)
	GetProgram(ctx context.Context, id int64) (*models.Program, error)
	ListPrograms(ctx context.Context, filter models.ProgramFilter, page, size int) (*dto.ProgramListResponse, error)
	UpdateProgram(ctx context.Context, id int64, patch models.ProgramPatch) (*models.Program, error)
	AssociateOrganization(ctx context.Context, programID, organizationID int64) error
	AddCourseCode(ctx context.Context, programID, courseCodeID int64) (*models.ProgramCourseCode, error)
	RemoveCourseCode(ctx context.Context, programID, programCourseCodeID int64) error
	AddRunMode(ctx context.Context, programID, programCourseCodeID int64, req *dto.CreateRunModeRequest) (*models.RunMode, error)
	RemoveRunMode(ctx context.Context, programID, runModeID int64) error
	AvailableCourseCodes(ctx context.Context, programID int64) ([]models.CourseCode, error)
}

// programServiceImpl implements ProgramService
type programServiceImpl struct {
	programRepo      ProgramRepository
	organizationRepo OrganizationRepository
	courseCodeRepo   CourseCodeRepository
	runModeRepo      RunModeRepository
	notifier         ChangeNotifier
}

// NewProgramService creates a new ProgramService
func NewProgramService(
	programRepo ProgramRepository,
	organizationRepo OrganizationRepository,
	courseCodeRepo CourseCodeRepository,
	runModeRepo RunModeRepository,
	notifier ChangeNotifier,
) ProgramService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &programServiceImpl{
		programRepo:      programRepo,
		organizationRepo: organizationRepo,
		courseCodeRepo:   courseCodeRepo,
		runModeRepo:      runModeRepo,
		notifier:         notifier,
	}
}

func validateProgramField(field, value string) error {
	reason := validation.CheckProgramField(field, value)
	if reason == validation.ReasonNone {
		return nil
	}
	limit, _ := validation.ProgramFieldMaxLength(field)
	return apperrors.NewValidationError(field, validation.Message(field, reason, limit))
}

func validateStatusAndCategory(status *models.ProgramStatus, category *models.ProgramCategory) error {
	if status != nil && !status.Valid() {
		return apperrors.NewValidationError("status", fmt.Sprintf("%q is not a valid status", *status))
	}
	if category != nil && !category.Valid() {
		return apperrors.NewValidationError("category", fmt.Sprintf("%q is not a valid category", *category))
	}
	return nil
}

// CreateProgram validates and stores a new program. A missing marketing slug is derived
// from the name and made unique.
func (s *programServiceImpl) CreateProgram(ctx context.Context, req *dto.CreateProgramRequest) (*models.Program, error) {
	program := req.ToModel()
	program.Name = strings.TrimSpace(program.Name)
	program.MarketingSlug = strings.TrimSpace(program.MarketingSlug)

	if program.MarketingSlug == "" {
		base := helpers.Slugify(program.Name, validation.ProgramMarketingSlugMaxLength)
		slug, err := helpers.UniqueSlug(base, validation.ProgramMarketingSlugMaxLength, func(candidate string) (bool, error) {
			return s.programRepo.MarketingSlugExists(ctx, candidate)
		})
		if err != nil {
			return nil, fmt.Errorf("error generating marketing slug: %w", err)
		}
		program.MarketingSlug = slug
	}

	values := map[string]string{
		validation.FieldName:          program.Name,
		validation.FieldSubtitle:      program.Subtitle,
		validation.FieldMarketingSlug: program.MarketingSlug,
	}
	for _, field := range validation.ProgramFields {
		if err := validateProgramField(field, values[field]); err != nil {
			return nil, err
		}
	}
	if err := validateStatusAndCategory(&program.Status, &program.Category); err != nil {
		return nil, err
	}

	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, err
	}

	program.Organizations = []models.Organization{}
	program.CourseCodes = []models.ProgramCourseCode{}
	logger.Info().Int64("programID", program.ID).Str("slug", program.MarketingSlug).Msg("Program created")
	return program, nil
}

// GetProgram loads a program with its organizations, course codes and run modes
func (s *programServiceImpl) GetProgram(ctx context.Context, id int64) (*models.Program, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid program ID", apperrors.ErrValidationFailed)
	}

	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	orgs, err := s.organizationRepo.ListByProgram(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading program organizations: %w", err)
	}
	codes, err := s.courseCodeRepo.ListProgramCourseCodes(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading program course codes: %w", err)
	}
	runModes, err := s.runModeRepo.ListByProgram(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading program run modes: %w", err)
	}

	index := make(map[int64]int, len(codes))
	for i := range codes {
		index[codes[i].ID] = i
	}
	for _, rm := range runModes {
		if i, ok := index[rm.ProgramCourseCodeID]; ok {
			codes[i].RunModes = append(codes[i].RunModes, rm)
		}
	}

	program.Organizations = orgs
	program.CourseCodes = codes
	return program, nil
}

// ListPrograms returns one page of programs without their relations
func (s *programServiceImpl) ListPrograms(ctx context.Context, filter models.ProgramFilter, page, size int) (*dto.ProgramListResponse, error) {
	if err := validateStatusAndCategory(filter.Status, filter.Category); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	programs, total, err := s.programRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing programs: %w", err)
	}

	resp := &dto.ProgramListResponse{
		Programs:   make([]*models.Program, 0, len(programs)),
		Pagination: helpers.NewPaginationInfo(total, page, int(limit)),
	}
	for i := range programs {
		programs[i].Organizations = []models.Organization{}
		programs[i].CourseCodes = []models.ProgramCourseCode{}
		resp.Programs = append(resp.Programs, &programs[i])
	}
	return resp, nil
}

// UpdateProgram validates and applies a partial update
func (s *programServiceImpl) UpdateProgram(ctx context.Context, id int64, patch models.ProgramPatch) (*models.Program, error) {
	if patch.Empty() {
		return nil, fmt.Errorf("%w: no attributes to update", apperrors.ErrValidationFailed)
	}

	text := map[string]*string{
		validation.FieldName:          patch.Name,
		validation.FieldSubtitle:      patch.Subtitle,
		validation.FieldMarketingSlug: patch.MarketingSlug,
	}
	for _, field := range validation.ProgramFields {
		value := text[field]
		if value == nil {
			continue
		}
		if err := validateProgramField(field, *value); err != nil {
			return nil, err
		}
	}
	if err := validateStatusAndCategory(patch.Status, patch.Category); err != nil {
		return nil, err
	}

	program, err := s.programRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.notifier.ProgramChanged(ctx, id, ChangeUpdated)
	return program, nil
}

// AssociateOrganization links an organization to a program that has none yet
func (s *programServiceImpl) AssociateOrganization(ctx context.Context, programID, organizationID int64) error {
	if _, err := s.programRepo.GetByID(ctx, programID); err != nil {
		return err
	}
	if _, err := s.organizationRepo.GetByID(ctx, organizationID); err != nil {
		return err
	}

	if err := s.organizationRepo.AssociateWithProgram(ctx, programID, organizationID); err != nil {
		return err
	}
	s.notifier.ProgramChanged(ctx, programID, ChangeOrganizationAdded)
	return nil
}

// AddCourseCode appends a course code to the program. The course code must be offered by the
// program's organization and must not be used by another program.
func (s *programServiceImpl) AddCourseCode(ctx context.Context, programID, courseCodeID int64) (*models.ProgramCourseCode, error) {
	if _, err := s.programRepo.GetByID(ctx, programID); err != nil {
		return nil, err
	}

	cc, err := s.courseCodeRepo.GetByID(ctx, courseCodeID)
	if err != nil {
		return nil, err
	}

	orgs, err := s.organizationRepo.ListByProgram(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("error loading program organizations: %w", err)
	}
	offered := false
	for _, org := range orgs {
		if org.ID == cc.OrganizationID {
			offered = true
			break
		}
	}
	if !offered {
		return nil, apperrors.ErrCourseCodeOrgMismatch
	}

	ownerID, used, err := s.courseCodeRepo.ProgramIDFor(ctx, courseCodeID)
	if err != nil {
		return nil, err
	}
	if used {
		if ownerID != programID {
			return nil, apperrors.ErrCourseCodeInOtherProgram
		}
		return nil, apperrors.NewConflictError("course code is already part of this program")
	}

	pcc, err := s.courseCodeRepo.AddToProgram(ctx, programID, courseCodeID)
	if err != nil {
		return nil, err
	}
	pcc.DisplayName = cc.DisplayName
	pcc.Key = cc.Key
	if cc.Organization != nil {
		pcc.Organization = *cc.Organization
	}

	s.notifier.ProgramChanged(ctx, programID, ChangeCourseCodeAdded)
	return pcc, nil
}

// RemoveCourseCode detaches a course code and its run modes from the program
func (s *programServiceImpl) RemoveCourseCode(ctx context.Context, programID, programCourseCodeID int64) error {
	if err := s.courseCodeRepo.RemoveFromProgram(ctx, programID, programCourseCodeID); err != nil {
		return err
	}
	s.notifier.ProgramChanged(ctx, programID, ChangeCourseCodeRemoved)
	return nil
}

// AddRunMode attaches a run mode to a course code of the program
func (s *programServiceImpl) AddRunMode(ctx context.Context, programID, programCourseCodeID int64, req *dto.CreateRunModeRequest) (*models.RunMode, error) {
	if _, err := s.courseCodeRepo.GetProgramCourseCode(ctx, programID, programCourseCodeID); err != nil {
		return nil, err
	}

	rm := &models.RunMode{
		ProgramCourseCodeID: programCourseCodeID,
		CourseKey:           strings.TrimSpace(req.CourseKey),
		ModeSlug:            models.ModeSlug(strings.TrimSpace(req.ModeSlug)),
		SKU:                 helpers.NullableString(req.SKU),
		LMSURL:              helpers.NullableString(req.LMSURL),
	}

	if !validation.NewStringValidation(rm.CourseKey).WithMaxLength(validation.RunModeCourseKeyMaxLength).Validate() {
		return nil, apperrors.NewValidationError("course_key", "course key is required and must be at most 255 characters")
	}
	if !rm.ModeSlug.Valid() {
		return nil, apperrors.NewValidationError("mode_slug", fmt.Sprintf("%q is not a known mode", rm.ModeSlug))
	}
	if rm.SKU != nil && !validation.NewStringValidation(*rm.SKU).WithMaxLength(validation.RunModeSKUMaxLength).Validate() {
		return nil, apperrors.NewValidationError("sku", "sku must be at most 255 characters")
	}

	start, err := parseStartDate(req.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationError("start_date", "start date must be YYYY-MM-DD or RFC 3339")
	}
	rm.StartDate = start

	if rm.SKU == nil {
		exists, err := s.runModeRepo.ExistsWithoutSKU(ctx, programCourseCodeID, rm.CourseKey, rm.ModeSlug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.ErrRunModeDuplicate
		}
	}

	if err := s.runModeRepo.Create(ctx, rm); err != nil {
		return nil, err
	}
	s.notifier.ProgramChanged(ctx, programID, ChangeRunModeAdded)
	return rm, nil
}

func parseStartDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(helpers.DateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// RemoveRunMode deletes one run mode of the program
func (s *programServiceImpl) RemoveRunMode(ctx context.Context, programID, runModeID int64) error {
	if err := s.runModeRepo.Delete(ctx, programID, runModeID); err != nil {
		return err
	}
	s.notifier.ProgramChanged(ctx, programID, ChangeRunModeRemoved)
	return nil
}

// AvailableCourseCodes lists the course codes that can still be added to the program
func (s *programServiceImpl) AvailableCourseCodes(ctx context.Context, programID int64) ([]models.CourseCode, error) {
	codes, err := s.courseCodeRepo.ListAvailableForProgram(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("error listing available course codes: %w", err)
	}
	return codes, nil
}
