package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openedx/programs-admin/internal/app/models/dto"
	"github.com/openedx/programs-admin/internal/middleware"
	"github.com/openedx/programs-admin/internal/pkg/auth"
)

// AuthController exposes the authenticated identity and the browser session cookie
type AuthController struct {
	cookieTTL time.Duration
	secure    bool
}

// NewAuthController creates a new AuthController. cookieTTL should match the lifetime of
// the identity provider tokens.
func NewAuthController(cookieTTL time.Duration, secure bool) *AuthController {
	return &AuthController{
		cookieTTL: cookieTTL,
		secure:    secure,
	}
}

// Me godoc
// @Summary Current user
// @Description Returns the local user created or updated from the token claims
// @Tags auth
// @Produce json
// @Security JWTAuth
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user, ""))
}

// CreateSession godoc
// @Summary Start a browser session
// @Description Stores the already validated Authorization token in an HttpOnly cookie so program pages and their live updates are authenticated
// @Tags auth
// @Produce json
// @Security JWTAuth
// @Success 204 "Cookie set"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /auth/session [post]
func (c *AuthController) CreateSession(ctx *gin.Context) {
	token, err := auth.ExtractToken(ctx.GetHeader("Authorization"))
	if err != nil {
		// Authenticated through the cookie already
		ctx.Status(http.StatusNoContent)
		return
	}

	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(middleware.TokenCookie, token, int(c.cookieTTL.Seconds()), "/", "", c.secure, true)
	ctx.Status(http.StatusNoContent)
}

// DeleteSession godoc
// @Summary End the browser session
// @Tags auth
// @Success 204 "Cookie cleared"
// @Router /auth/session [delete]
func (c *AuthController) DeleteSession(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(middleware.TokenCookie, "", -1, "/", "", c.secure, true)
	ctx.Status(http.StatusNoContent)
}
