package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/openedx/programs-admin/internal/db"
	"github.com/openedx/programs-admin/internal/pkg/apperrors"
	"github.com/openedx/programs-admin/internal/pkg/dberrors"
)

// RunModeRepository handles run mode database operations
type RunModeRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewRunModeRepository creates a new RunModeRepository
func NewRunModeRepository(q db.Querier) *RunModeRepository {
	return &RunModeRepository{
		db: q,
		sb: statementBuilder(),
	}
}

// Create inserts a run mode
func (r *RunModeRepository) Create(ctx context.Context, rm *models.RunMode) error {
	sql, args, err := r.sb.Insert("run_modes").
		Columns("program_course_code_id", "lms_url", "course_key", "mode_slug", "sku", "start_date").
		Values(rm.ProgramCourseCodeID, rm.LMSURL, rm.CourseKey, rm.ModeSlug, rm.SKU, rm.StartDate).
		Suffix("RETURNING id, created_at, modified_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create run mode query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&rm.ID, &rm.CreatedAt, &rm.ModifiedAt); err != nil {
		switch {
		case dberrors.IsUniqueViolation(err):
			return apperrors.ErrRunModeDuplicate
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.ErrProgramCourseCodeNotFound
		}
		return fmt.Errorf("failed to create run mode: %w", err)
	}
	return nil
}

// ExistsWithoutSKU reports whether a run mode with the same course key and mode but no SKU
// is already attached. NULL SKUs never collide in the unique index.
func (r *RunModeRepository) ExistsWithoutSKU(ctx context.Context, programCourseCodeID int64, courseKey string, mode models.ModeSlug) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM run_modes
			WHERE program_course_code_id = $1 AND course_key = $2 AND mode_slug = $3 AND sku IS NULL
		)`, programCourseCodeID, courseKey, mode).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check run mode: %w", err)
	}
	return exists, nil
}

// ListByProgram returns the run modes of every course code in the program, ordered by start date
func (r *RunModeRepository) ListByProgram(ctx context.Context, programID int64) ([]models.RunMode, error) {
	sql, args, err := r.sb.Select(
		"rm.id", "rm.program_course_code_id", "rm.lms_url", "rm.course_key", "rm.mode_slug",
		"rm.sku", "rm.start_date", "rm.created_at", "rm.modified_at",
	).
		From("run_modes rm").
		Join("program_course_codes pcc ON pcc.id = rm.program_course_code_id").
		Where(squirrel.Eq{"pcc.program_id": programID}).
		OrderBy("rm.start_date ASC", "rm.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list run modes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list run modes: %w", err)
	}
	defer rows.Close()

	modes := make([]models.RunMode, 0)
	for rows.Next() {
		var rm models.RunMode
		if err := rows.Scan(
			&rm.ID, &rm.ProgramCourseCodeID, &rm.LMSURL, &rm.CourseKey, &rm.ModeSlug,
			&rm.SKU, &rm.StartDate, &rm.CreatedAt, &rm.ModifiedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run mode: %w", err)
		}
		modes = append(modes, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate run modes: %w", err)
	}
	return modes, nil
}

// Delete removes a run mode belonging to the program
func (r *RunModeRepository) Delete(ctx context.Context, programID, runModeID int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM run_modes rm
		USING program_course_codes pcc
		WHERE rm.id = $1 AND rm.program_course_code_id = pcc.id AND pcc.program_id = $2`,
		runModeID, programID)
	if err != nil {
		return fmt.Errorf("failed to delete run mode: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRunModeNotFound
	}
	return nil
}
