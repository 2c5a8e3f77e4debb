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

var programColumns = []string{
	"id", "name", "subtitle", "marketing_slug", "status", "category", "created_at", "modified_at",
}

// ProgramRepository handles program database operations
type ProgramRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(q db.Querier) *ProgramRepository {
	return &ProgramRepository{
		db: q,
		sb: statementBuilder(),
	}
}

func scanProgram(row pgx.Row, p *models.Program) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Subtitle, &p.MarketingSlug, &p.Status, &p.Category, &p.CreatedAt, &p.ModifiedAt,
	)
}

// Create inserts a program and fills in its generated columns
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) error {
	sql, args, err := r.sb.Insert("programs").
		Columns("name", "subtitle", "marketing_slug", "status", "category").
		Values(program.Name, program.Subtitle, program.MarketingSlug, program.Status, program.Category).
		Suffix("RETURNING id, created_at, modified_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create program query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&program.ID, &program.CreatedAt, &program.ModifiedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrProgramAlreadyExists
		}
		logger.Error().Err(err).Str("name", program.Name).Msg("Error creating program")
		return fmt.Errorf("failed to create program: %w", err)
	}
	return nil
}

// GetByID retrieves the program row without its relations
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	sql, args, err := r.sb.Select(programColumns...).
		From("programs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get program query: %w", err)
	}

	var program models.Program
	if err := scanProgram(r.db.QueryRow(ctx, sql, args...), &program); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("failed to get program: %w", err)
	}
	return &program, nil
}

// List returns one page of programs ordered by name together with the total count
func (r *ProgramRepository) List(ctx context.Context, filter models.ProgramFilter, offset, limit uint64) ([]models.Program, int64, error) {
	where := squirrel.And{}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	}
	if filter.Category != nil {
		where = append(where, squirrel.Eq{"category": *filter.Category})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("programs").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count programs query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count programs: %w", err)
	}

	sql, args, err := r.sb.Select(programColumns...).
		From("programs").
		Where(where).
		OrderBy("name ASC").
		Offset(offset).
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list programs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list programs: %w", err)
	}
	defer rows.Close()

	programs := make([]models.Program, 0)
	for rows.Next() {
		var p models.Program
		if err := scanProgram(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("failed to scan program: %w", err)
		}
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate programs: %w", err)
	}
	return programs, total, nil
}

// Update applies patch to the program and returns the stored row
func (r *ProgramRepository) Update(ctx context.Context, id int64, patch models.ProgramPatch) (*models.Program, error) {
	set := map[string]interface{}{"modified_at": squirrel.Expr("NOW()")}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Subtitle != nil {
		set["subtitle"] = *patch.Subtitle
	}
	if patch.MarketingSlug != nil {
		set["marketing_slug"] = *patch.MarketingSlug
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}

	sql, args, err := r.sb.Update("programs").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, name, subtitle, marketing_slug, status, category, created_at, modified_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update program query: %w", err)
	}

	var program models.Program
	if err := scanProgram(r.db.QueryRow(ctx, sql, args...), &program); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, apperrors.ErrProgramNotFound
		case dberrors.IsUniqueViolation(err):
			return nil, apperrors.ErrProgramAlreadyExists
		}
		logger.Error().Err(err).Int64("programID", id).Msg("Error updating program")
		return nil, fmt.Errorf("failed to update program: %w", err)
	}
	return &program, nil
}

// MarketingSlugExists reports whether another program already uses slug
func (r *ProgramRepository) MarketingSlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM programs WHERE marketing_slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check marketing slug: %w", err)
	}
	return exists, nil
}
