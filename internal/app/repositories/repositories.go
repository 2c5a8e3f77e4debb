package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/openedx/programs-admin/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	ProgramRepository      *ProgramRepository
	OrganizationRepository *OrganizationRepository
	CourseCodeRepository   *CourseCodeRepository
	RunModeRepository      *RunModeRepository
}

// NewRepositories initializes all repositories
func NewRepositories(q db.Querier) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(q),
		ProgramRepository:      NewProgramRepository(q),
		OrganizationRepository: NewOrganizationRepository(q),
		CourseCodeRepository:   NewCourseCodeRepository(q),
		RunModeRepository:      NewRunModeRepository(q),
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
