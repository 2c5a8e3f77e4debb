package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/openedx/programs-admin/internal/pkg/apperrors"
	"github.com/openedx/programs-admin/internal/pkg/auth"
	"github.com/openedx/programs-admin/internal/pkg/dberrors"
	"github.com/openedx/programs-admin/internal/pkg/logger"
)

// MaxUserCreateRetries bounds the get-or-create loop when two requests race to create the
// same user.
const MaxUserCreateRetries = 3

// TokenValidator validates bearer tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// AuthService turns identity provider tokens into local users
type AuthService interface {
	AuthenticateToken(ctx context.Context, token string) (*models.User, error)
	Authenticate(ctx context.Context, claims *auth.Claims) (*models.User, error)
}

type authServiceImpl struct {
	userRepo  UserRepository
	validator TokenValidator
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo UserRepository, validator TokenValidator) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		validator: validator,
	}
}

// AuthenticateToken validates the token and returns the matching user
func (s *authServiceImpl) AuthenticateToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.validator.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	return s.Authenticate(ctx, claims)
}

// Authenticate gets or creates the user named by preferred_username and syncs the profile and
// admin flag from the claims.
func (s *authServiceImpl) Authenticate(ctx context.Context, claims *auth.Claims) (*models.User, error) {
	if claims == nil || claims.PreferredUsername == "" {
		return nil, apperrors.ErrMissingUsername
	}

	user, err := s.getOrCreate(ctx, claims)
	if err != nil {
		return nil, err
	}

	if user.IsAdmin != claims.Administrator {
		logger.Info().Str("username", user.Username).Bool("admin", claims.Administrator).Msg("Updating admin role from token")
	}
	user.IsAdmin = claims.Administrator
	if claims.Email != "" {
		user.Email = claims.Email
	}
	if claims.Name != "" {
		user.FullName = claims.Name
	}

	if err := s.userRepo.UpdateLogin(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.NewForbiddenError("user account is disabled")
	}
	return user, nil
}

func (s *authServiceImpl) getOrCreate(ctx context.Context, claims *auth.Claims) (*models.User, error) {
	for attempt := 1; ; attempt++ {
		user, err := s.userRepo.GetByUsername(ctx, claims.PreferredUsername)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}

		user = &models.User{
			Username: claims.PreferredUsername,
			Email:    claims.Email,
			FullName: claims.Name,
			IsAdmin:  claims.Administrator,
			IsActive: true,
		}
		err = s.userRepo.Create(ctx, user)
		if err == nil {
			logger.Info().Str("username", user.Username).Msg("Created user from token")
			return user, nil
		}
		if !dberrors.IsUniqueViolation(err) || attempt >= MaxUserCreateRetries {
			return nil, err
		}
		logger.Warn().Str("username", claims.PreferredUsername).Int("attempt", attempt).
			Msg("User created concurrently, retrying lookup")
	}
}
