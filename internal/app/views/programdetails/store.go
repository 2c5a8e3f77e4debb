package programdetails

import (
	"context"

	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/openedx/programs-admin/internal/app/services"
)

// Store persists the edits made through a View.
type Store interface {
	SaveFields(ctx context.Context, programID int64, patch models.ProgramPatch) (*models.Program, error)
	AddCourseCode(ctx context.Context, programID, courseCodeID int64) (*models.ProgramCourseCode, error)
	RemoveCourseCode(ctx context.Context, programID, programCourseCodeID int64) error
	RemoveRunMode(ctx context.Context, programID, runModeID int64) error
	AvailableCourseCodes(ctx context.Context, programID int64) ([]models.CourseCode, error)
}

// ServiceStore adapts the program service to Store.
type ServiceStore struct {
	Programs services.ProgramService
}

// NewServiceStore creates a Store backed by the program service
func NewServiceStore(programs services.ProgramService) *ServiceStore {
	return &ServiceStore{Programs: programs}
}

func (s *ServiceStore) SaveFields(ctx context.Context, programID int64, patch models.ProgramPatch) (*models.Program, error) {
	return s.Programs.UpdateProgram(ctx, programID, patch)
}

func (s *ServiceStore) AddCourseCode(ctx context.Context, programID, courseCodeID int64) (*models.ProgramCourseCode, error) {
	return s.Programs.AddCourseCode(ctx, programID, courseCodeID)
}

func (s *ServiceStore) RemoveCourseCode(ctx context.Context, programID, programCourseCodeID int64) error {
	return s.Programs.RemoveCourseCode(ctx, programID, programCourseCodeID)
}

func (s *ServiceStore) RemoveRunMode(ctx context.Context, programID, runModeID int64) error {
	return s.Programs.RemoveRunMode(ctx, programID, runModeID)
}

func (s *ServiceStore) AvailableCourseCodes(ctx context.Context, programID int64) ([]models.CourseCode, error) {
	return s.Programs.AvailableCourseCodes(ctx, programID)
}
