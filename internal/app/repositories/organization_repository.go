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
)

const programOrganizationConstraint = "uq_program_organizations_program"

// OrganizationRepository handles organization database operations
type OrganizationRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(q db.Querier) *OrganizationRepository {
	return &OrganizationRepository{
		db: q,
		sb: statementBuilder(),
	}
}

// Create inserts an organization
func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO organizations (key, display_name)
		VALUES ($1, $2)
		RETURNING id, created_at, modified_at`,
		org.Key, org.DisplayName).Scan(&org.ID, &org.CreatedAt, &org.ModifiedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrOrganizationAlreadyExists
		}
		return fmt.Errorf("failed to create organization: %w", err)
	}
	return nil
}

// GetByID retrieves an organization by ID
func (r *OrganizationRepository) GetByID(ctx context.Context, id int64) (*models.Organization, error) {
	var org models.Organization
	err := r.db.QueryRow(ctx, `
		SELECT id, key, display_name, created_at, modified_at
		FROM organizations
		WHERE id = $1`, id).Scan(&org.ID, &org.Key, &org.DisplayName, &org.CreatedAt, &org.ModifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return &org, nil
}

// List returns all organizations ordered by key
func (r *OrganizationRepository) List(ctx context.Context) ([]models.Organization, error) {
	sql, args, err := r.sb.Select("id", "key", "display_name", "created_at", "modified_at").
		From("organizations").
		OrderBy("key ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list organizations query: %w", err)
	}
	return r.query(ctx, sql, args...)
}

// ListByProgram returns the organizations offering a program
func (r *OrganizationRepository) ListByProgram(ctx context.Context, programID int64) ([]models.Organization, error) {
	sql, args, err := r.sb.Select("o.id", "o.key", "o.display_name", "o.created_at", "o.modified_at").
		From("organizations o").
		Join("program_organizations po ON po.organization_id = o.id").
		Where(squirrel.Eq{"po.program_id": programID}).
		OrderBy("o.key ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build program organizations query: %w", err)
	}
	return r.query(ctx, sql, args...)
}

func (r *OrganizationRepository) query(ctx context.Context, sql string, args ...interface{}) ([]models.Organization, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query organizations: %w", err)
	}
	defer rows.Close()

	orgs := make([]models.Organization, 0)
	for rows.Next() {
		var org models.Organization
		if err := rows.Scan(&org.ID, &org.Key, &org.DisplayName, &org.CreatedAt, &org.ModifiedAt); err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate organizations: %w", err)
	}
	return orgs, nil
}

// AssociateWithProgram links an organization to a program. A program accepts one organization.
func (r *OrganizationRepository) AssociateWithProgram(ctx context.Context, programID, organizationID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO program_organizations (program_id, organization_id)
		VALUES ($1, $2)`, programID, organizationID)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, programOrganizationConstraint):
			return apperrors.ErrProgramOrganizationExists
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.NewResourceNotFoundError("program or organization not found")
		}
		return fmt.Errorf("failed to associate organization: %w", err)
	}
	return nil
}
