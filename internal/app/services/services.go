package services

import (
	"context"

	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/openedx/programs-admin/internal/app/repositories"
	"github.com/openedx/programs-admin/internal/pkg/auth"
)

// ProgramRepository is the program persistence used by ProgramService
type ProgramRepository interface {
	Create(ctx context.Context, program *models.Program) error
	GetByID(ctx context.Context, id int64) (*models.Program, error)
	List(ctx context.Context, filter models.ProgramFilter, offset, limit uint64) ([]models.Program, int64, error)
	Update(ctx context.Context, id int64, patch models.ProgramPatch) (*models.Program, error)
	MarketingSlugExists(ctx context.Context, slug string) (bool, error)
}

// OrganizationRepository is the organization persistence
type OrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	GetByID(ctx context.Context, id int64) (*models.Organization, error)
	List(ctx context.Context) ([]models.Organization, error)
	ListByProgram(ctx context.Context, programID int64) ([]models.Organization, error)
	AssociateWithProgram(ctx context.Context, programID, organizationID int64) error
}

// CourseCodeRepository is the course code and program placement persistence
type CourseCodeRepository interface {
	Create(ctx context.Context, cc *models.CourseCode) error
	GetByID(ctx context.Context, id int64) (*models.CourseCode, error)
	List(ctx context.Context, organizationID *int64) ([]models.CourseCode, error)
	ListAvailableForProgram(ctx context.Context, programID int64) ([]models.CourseCode, error)
	ProgramIDFor(ctx context.Context, courseCodeID int64) (int64, bool, error)
	AddToProgram(ctx context.Context, programID, courseCodeID int64) (*models.ProgramCourseCode, error)
	GetProgramCourseCode(ctx context.Context, programID, id int64) (*models.ProgramCourseCode, error)
	ListProgramCourseCodes(ctx context.Context, programID int64) ([]models.ProgramCourseCode, error)
	RemoveFromProgram(ctx context.Context, programID, programCourseCodeID int64) error
}

// RunModeRepository is the run mode persistence
type RunModeRepository interface {
	Create(ctx context.Context, rm *models.RunMode) error
	ExistsWithoutSKU(ctx context.Context, programCourseCodeID int64, courseKey string, mode models.ModeSlug) (bool, error)
	ListByProgram(ctx context.Context, programID int64) ([]models.RunMode, error)
	Delete(ctx context.Context, programID, runModeID int64) error
}

// UserRepository is the staff user persistence
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateLogin(ctx context.Context, user *models.User) error
}

// ChangeNotifier is told whenever a program is modified so open pages can refresh. ctx carries
// the origin of the change, if any.
type ChangeNotifier interface {
	ProgramChanged(ctx context.Context, programID int64, change string)
}

// Change kinds published to the ChangeNotifier
const (
	ChangeUpdated           = "updated"
	ChangeOrganizationAdded = "organization_added"
	ChangeCourseCodeAdded   = "course_code_added"
	ChangeCourseCodeRemoved = "course_code_removed"
	ChangeRunModeAdded      = "run_mode_added"
	ChangeRunModeRemoved    = "run_mode_removed"
)

type originKey struct{}

// WithOrigin tags ctx with the id of the page that triggered a change.
func WithOrigin(ctx context.Context, viewID string) context.Context {
	return context.WithValue(ctx, originKey{}, viewID)
}

// OriginFrom returns the page id set by WithOrigin, or "".
func OriginFrom(ctx context.Context) string {
	id, _ := ctx.Value(originKey{}).(string)
	return id
}

type noopNotifier struct{}

func (noopNotifier) ProgramChanged(context.Context, int64, string) {}

// Services bundles the application services
type Services struct {
	ProgramService ProgramService
	CatalogService CatalogService
	AuthService    AuthService
}

// NewServices wires the services over the repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, notifier ChangeNotifier) *Services {
	return &Services{
		ProgramService: NewProgramService(
			repos.ProgramRepository,
			repos.OrganizationRepository,
			repos.CourseCodeRepository,
			repos.RunModeRepository,
			notifier,
		),
		CatalogService: NewCatalogService(repos.OrganizationRepository, repos.CourseCodeRepository),
		AuthService:    NewAuthService(repos.UserRepository, jwtService),
	}
}
