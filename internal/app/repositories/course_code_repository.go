package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/openedx/programs-admin/internal/db"
	"github.com/openedx/programs-admin/internal/pkg/apperrors"
	"github.com/openedx/programs-admin/internal/pkg/dberrors"
	"github.com/openedx/programs-admin/internal/pkg/logger"
)

const (
	courseCodeProgramConstraint  = "uq_program_course_codes_course_code"
	courseCodePositionConstraint = "uq_program_course_codes_position"
)

var courseCodeColumns = []string{
	"cc.id", "cc.organization_id", "cc.key", "cc.display_name", "cc.created_at", "cc.modified_at",
	"o.id", "o.key", "o.display_name", "o.created_at", "o.modified_at",
}

// CourseCodeRepository handles course codes and their placement inside programs
type CourseCodeRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewCourseCodeRepository creates a new CourseCodeRepository
func NewCourseCodeRepository(q db.Querier) *CourseCodeRepository {
	return &CourseCodeRepository{
		db: q,
		sb: statementBuilder(),
	}
}

func scanCourseCode(row pgx.Row) (models.CourseCode, error) {
	var cc models.CourseCode
	var org models.Organization
	err := row.Scan(
		&cc.ID, &cc.OrganizationID, &cc.Key, &cc.DisplayName, &cc.CreatedAt, &cc.ModifiedAt,
		&org.ID, &org.Key, &org.DisplayName, &org.CreatedAt, &org.ModifiedAt,
	)
	cc.Organization = &org
	return cc, err
}

// Create inserts a course code
func (r *CourseCodeRepository) Create(ctx context.Context, cc *models.CourseCode) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO course_codes (organization_id, key, display_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, modified_at`,
		cc.OrganizationID, cc.Key, cc.DisplayName).Scan(&cc.ID, &cc.CreatedAt, &cc.ModifiedAt)
	if err != nil {
		switch {
		case dberrors.IsUniqueViolation(err):
			return apperrors.ErrCourseCodeAlreadyExists
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to create course code: %w", err)
	}
	return nil
}

// GetByID retrieves a course code with its organization
func (r *CourseCodeRepository) GetByID(ctx context.Context, id int64) (*models.CourseCode, error) {
	sql, args, err := r.sb.Select(courseCodeColumns...).
		From("course_codes cc").
		Join("organizations o ON o.id = cc.organization_id").
		Where(squirrel.Eq{"cc.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course code query: %w", err)
	}

	cc, err := scanCourseCode(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseCodeNotFound
		}
		return nil, fmt.Errorf("failed to get course code: %w", err)
	}
	return &cc, nil
}

// List returns course codes, optionally restricted to one organization
func (r *CourseCodeRepository) List(ctx context.Context, organizationID *int64) ([]models.CourseCode, error) {
	q := r.sb.Select(courseCodeColumns...).
		From("course_codes cc").
		Join("organizations o ON o.id = cc.organization_id").
		OrderBy("cc.key ASC")
	if organizationID != nil {
		q = q.Where(squirrel.Eq{"cc.organization_id": *organizationID})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list course codes query: %w", err)
	}
	return r.queryCourseCodes(ctx, sql, args...)
}

// ListAvailableForProgram returns the course codes of the program's organization that no
// program uses yet.
func (r *CourseCodeRepository) ListAvailableForProgram(ctx context.Context, programID int64) ([]models.CourseCode, error) {
	sql, args, err := r.sb.Select(courseCodeColumns...).
		From("course_codes cc").
		Join("organizations o ON o.id = cc.organization_id").
		Join("program_organizations po ON po.organization_id = cc.organization_id").
		Where(squirrel.Eq{"po.program_id": programID}).
		Where("NOT EXISTS (SELECT 1 FROM program_course_codes pcc WHERE pcc.course_code_id = cc.id)").
		OrderBy("cc.display_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build available course codes query: %w", err)
	}
	return r.queryCourseCodes(ctx, sql, args...)
}

func (r *CourseCodeRepository) queryCourseCodes(ctx context.Context, sql string, args ...interface{}) ([]models.CourseCode, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query course codes: %w", err)
	}
	defer rows.Close()

	codes := make([]models.CourseCode, 0)
	for rows.Next() {
		cc, err := scanCourseCode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course code: %w", err)
		}
		codes = append(codes, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate course codes: %w", err)
	}
	return codes, nil
}

// ProgramIDFor returns the program currently using the course code, if any
func (r *CourseCodeRepository) ProgramIDFor(ctx context.Context, courseCodeID int64) (int64, bool, error) {
	var programID int64
	err := r.db.QueryRow(ctx, `SELECT program_id FROM program_course_codes WHERE course_code_id = $1`, courseCodeID).Scan(&programID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to look up course code program: %w", err)
	}
	return programID, true, nil
}

// AddToProgram appends the course code after the program's last position
func (r *CourseCodeRepository) AddToProgram(ctx context.Context, programID, courseCodeID int64) (*models.ProgramCourseCode, error) {
	pcc := &models.ProgramCourseCode{ProgramID: programID, CourseCodeID: courseCodeID}
	err := r.db.QueryRow(ctx, `
		INSERT INTO program_course_codes (program_id, course_code_id, position)
		SELECT $1, $2, COALESCE(MAX(position), 0) + 1
		FROM program_course_codes
		WHERE program_id = $1
		RETURNING id, position`, programID, courseCodeID).Scan(&pcc.ID, &pcc.Position)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, courseCodeProgramConstraint):
			return nil, apperrors.ErrCourseCodeInOtherProgram
		case dberrors.IsDuplicateConstraintError(err, courseCodePositionConstraint):
			return nil, apperrors.NewConflictError("program course list changed concurrently, try again")
		case dberrors.IsForeignKeyViolation(err):
			return nil, apperrors.ErrCourseCodeNotFound
		}
		logger.Error().Err(err).Int64("programID", programID).Int64("courseCodeID", courseCodeID).
			Msg("Error adding course code to program")
		return nil, fmt.Errorf("failed to add course code to program: %w", err)
	}
	pcc.RunModes = []models.RunMode{}
	return pcc, nil
}

// GetProgramCourseCode retrieves one placement of a course code within a program
func (r *CourseCodeRepository) GetProgramCourseCode(ctx context.Context, programID, id int64) (*models.ProgramCourseCode, error) {
	codes, err := r.listProgramCourseCodes(ctx, squirrel.Eq{"pcc.program_id": programID, "pcc.id": id})
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return nil, apperrors.ErrProgramCourseCodeNotFound
	}
	return &codes[0], nil
}

// ListProgramCourseCodes returns the program's course codes ordered by position. Run modes
// are not loaded.
func (r *CourseCodeRepository) ListProgramCourseCodes(ctx context.Context, programID int64) ([]models.ProgramCourseCode, error) {
	return r.listProgramCourseCodes(ctx, squirrel.Eq{"pcc.program_id": programID})
}

func (r *CourseCodeRepository) listProgramCourseCodes(ctx context.Context, where squirrel.Eq) ([]models.ProgramCourseCode, error) {
	sql, args, err := r.sb.Select(
		"pcc.id", "pcc.program_id", "pcc.course_code_id", "pcc.position",
		"cc.display_name", "cc.key",
		"o.id", "o.key", "o.display_name", "o.created_at", "o.modified_at",
	).
		From("program_course_codes pcc").
		Join("course_codes cc ON cc.id = pcc.course_code_id").
		Join("organizations o ON o.id = cc.organization_id").
		Where(where).
		OrderBy("pcc.position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build program course codes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query program course codes: %w", err)
	}
	defer rows.Close()

	codes := make([]models.ProgramCourseCode, 0)
	for rows.Next() {
		var pcc models.ProgramCourseCode
		if err := rows.Scan(
			&pcc.ID, &pcc.ProgramID, &pcc.CourseCodeID, &pcc.Position,
			&pcc.DisplayName, &pcc.Key,
			&pcc.Organization.ID, &pcc.Organization.Key, &pcc.Organization.DisplayName,
			&pcc.Organization.CreatedAt, &pcc.Organization.ModifiedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan program course code: %w", err)
		}
		pcc.RunModes = []models.RunMode{}
		codes = append(codes, pcc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate program course codes: %w", err)
	}
	return codes, nil
}

// RemoveFromProgram detaches a course code from a program. Its run modes go with it.
func (r *CourseCodeRepository) RemoveFromProgram(ctx context.Context, programID, programCourseCodeID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM program_course_codes WHERE id = $1 AND program_id = $2`,
		programCourseCodeID, programID)
	if err != nil {
		return fmt.Errorf("failed to remove course code from program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProgramCourseCodeNotFound
	}
	return nil
}
