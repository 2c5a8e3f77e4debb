package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/openedx/programs-admin/internal/db"
	"github.com/openedx/programs-admin/internal/pkg/apperrors"
)

// UserRepository handles staff user database operations
type UserRepository struct {
	db db.Querier
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(q db.Querier) *UserRepository {
	return &UserRepository{db: q}
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, username, email, full_name, is_admin, is_active, created_at, updated_at, last_login_at
		FROM users
		WHERE username = $1`,
		username).Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName, &user.IsAdmin, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Create inserts a user. Unique violations are returned unwrapped so callers can retry.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (username, email, full_name, is_admin, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		user.Username, user.Email, user.FullName, user.IsAdmin, user.IsActive).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateLogin refreshes the profile claims and the last login time
func (r *UserRepository) UpdateLogin(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		UPDATE users
		SET email = $1, full_name = $2, is_admin = $3, last_login_at = NOW(), updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at, last_login_at`,
		user.Email, user.FullName, user.IsAdmin, user.ID).Scan(&user.UpdatedAt, &user.LastLoginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to update user login: %w", err)
	}
	return nil
}
