package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/openedx/programs-admin/internal/app/models/dto"
	"github.com/openedx/programs-admin/internal/app/services"
	"github.com/openedx/programs-admin/internal/pkg/apperrors"
	"github.com/openedx/programs-admin/internal/pkg/auth"
	"github.com/openedx/programs-admin/internal/pkg/logger"
)

// Context keys set by JWTAuth
const (
	ContextUser     = "user"
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextIsAdmin  = "isAdmin"
)

// TokenCookie carries the identity provider token for browser pages, which cannot set the
// Authorization header on navigation or websocket requests.
const TokenCookie = "programs_jwt"

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	authService services.AuthService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// JWTAuth authenticates the request from the Authorization header, falling back to the
// token cookie, and stores the local user in the context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractToken(c.GetHeader("Authorization"))
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			if cookie, cookieErr := c.Cookie(TokenCookie); cookieErr == nil && cookie != "" {
				token, err = cookie, nil
			}
		}
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		user, err := m.authService.AuthenticateToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, apperrors.ErrPermissionDenied) {
				c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
					dto.NewErrorDetail(dto.ErrorCodeForbidden, err.Error())))
				return
			}
			abortUnauthorized(c, err)
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextUserID, user.ID)
		c.Set(ContextUsername, user.Username)
		c.Set(ContextIsAdmin, user.IsAdmin)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	code := dto.ErrorCodeInvalidToken
	details := "Invalid token"

	switch {
	case errors.Is(err, apperrors.ErrTokenNotFound):
		code = dto.ErrorCodeUnauthorized
		details = "Authorization header missing"
	case errors.Is(err, apperrors.ErrInvalidFormat):
		details = "Invalid token format"
	case errors.Is(err, apperrors.ErrTokenExpired):
		code = dto.ErrorCodeExpiredToken
		details = "Token has expired"
	case errors.Is(err, apperrors.ErrMissingUsername):
		details = "Token does not identify a user"
	case errors.Is(err, apperrors.ErrTokenInvalid):
	default:
		// Anything else is a storage failure while resolving the user
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Failed to authenticate request")
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
		return
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
		dto.NewErrorDetail(code, "Authentication required").WithDetails(details)))
}

// AdminRequired rejects authenticated users without the admin role. JWTAuth must run first.
func (m *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
			return
		}

		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
					WithDetails("You don't have sufficient permissions for this operation")))
			return
		}

		c.Next()
	}
}

// CurrentUser returns the user stored by JWTAuth
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}
