package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openedx/programs-admin/internal/app/controllers"
	"github.com/openedx/programs-admin/internal/app/models/dto"
	"github.com/openedx/programs-admin/internal/middleware"
	"github.com/openedx/programs-admin/internal/pkg/metrics"
	"github.com/openedx/programs-admin/internal/pkg/websocket"
)

// Handlers groups everything SetupRouter mounts
type Handlers struct {
	Program     *controllers.ProgramController
	Catalog     *controllers.CatalogController
	Auth        *controllers.AuthController
	ProgramPage *controllers.ProgramPageController
	Live        *websocket.Handler
	AuthMW      *middleware.AuthMiddleware

	// Ping checks the database for /health. Nil reports healthy.
	Ping func(ctx context.Context) error

	// Metrics is served on MetricsPath when both are set
	Metrics     *metrics.Metrics
	MetricsPath string
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, h Handlers) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", healthHandler(h.Ping))
	v1.DELETE("/auth/session", h.Auth.DeleteSession)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(h.AuthMW.JWTAuth())
	{
		authenticated.GET("/auth/me", h.Auth.Me)
		authenticated.POST("/auth/session", h.Auth.CreateSession)

		authenticated.GET("/programs", h.Program.ListPrograms)
		authenticated.GET("/programs/:id", h.Program.GetProgram)
		authenticated.GET("/programs/:id/course_codes/available", h.Program.AvailableCourseCodes)

		authenticated.GET("/organizations", h.Catalog.ListOrganizations)
		authenticated.GET("/course_codes", h.Catalog.ListCourseCodes)
	}

	// --- Admin routes ---
	admin := authenticated.Group("")
	admin.Use(h.AuthMW.AdminRequired())
	{
		admin.POST("/programs", h.Program.CreateProgram)
		admin.PATCH("/programs/:id", h.Program.UpdateProgram)
		admin.POST("/programs/:id/organizations", h.Program.AssociateOrganization)
		admin.POST("/programs/:id/course_codes", h.Program.AddCourseCode)
		admin.DELETE("/programs/:id/course_codes/:pccId", h.Program.RemoveCourseCode)
		admin.POST("/programs/:id/course_codes/:pccId/run_modes", h.Program.AddRunMode)
		admin.DELETE("/programs/:id/run_modes/:runModeId", h.Program.RemoveRunMode)

		admin.POST("/organizations", h.Catalog.CreateOrganization)
		admin.POST("/course_codes", h.Catalog.CreateCourseCode)
	}

	// --- Admin pages ---
	pages := router.Group("/programs")
	pages.Use(h.AuthMW.JWTAuth(), h.AuthMW.AdminRequired())
	{
		pages.GET("/:id", h.ProgramPage.ShowProgram)
		pages.GET("/:id/live", h.Live.HandleConnection)
		pages.POST("/views/:viewId/events", h.ProgramPage.HandleEvent)
	}

	SetupSwagger(router)

	if h.Metrics != nil && h.MetricsPath != "" {
		router.GET(h.MetricsPath, gin.WrapH(h.Metrics.Handler()))
	}
}

// healthHandler godoc
// @Summary Liveness and database check
// @Tags health
// @Success 200 {object} dto.APIResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /health [get]
func healthHandler(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database unavailable")))
				return
			}
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}, ""))
	}
}
