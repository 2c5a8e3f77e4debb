package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/openedx/programs-admin/internal/app/controllers"
	appMigrations "github.com/openedx/programs-admin/internal/app/migrations"
	appRepos "github.com/openedx/programs-admin/internal/app/repositories"
	appRoutes "github.com/openedx/programs-admin/internal/app/routes"
	appServices "github.com/openedx/programs-admin/internal/app/services"
	"github.com/openedx/programs-admin/internal/app/views/programdetails"
	"github.com/openedx/programs-admin/internal/config"
	"github.com/openedx/programs-admin/internal/db"
	appMiddleware "github.com/openedx/programs-admin/internal/middleware"
	pkgAuth "github.com/openedx/programs-admin/internal/pkg/auth"
	"github.com/openedx/programs-admin/internal/pkg/helpers"
	"github.com/openedx/programs-admin/internal/pkg/logger"
	"github.com/openedx/programs-admin/internal/pkg/metrics"
	"github.com/openedx/programs-admin/internal/pkg/websocket"
	"github.com/openedx/programs-admin/internal/seed"
)

// DefaultConfigPath is read when no --config flag is given
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos      *appRepos.Repositories
	Services   *appServices.Services
	JWTService *pkgAuth.JWTService
	Hub        *websocket.Hub
	Sessions   *programdetails.SessionStore
	Metrics    *metrics.Metrics

	ProgramController     *appControllers.ProgramController
	CatalogController     *appControllers.CatalogController
	AuthController        *appControllers.AuthController
	ProgramPageController *appControllers.ProgramPageController
	LiveHandler           *websocket.Handler
	AuthMiddleware        *appMiddleware.AuthMiddleware

	Ping   func(ctx context.Context) error
	Logger zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	level := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  level,
		Pretty: strings.EqualFold(cfg.Logging.Format, "text"),
	})

	lgr.Info().Str("logLevel", string(level)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// NewJWTService builds the token service from the JWT section of the configuration
func NewJWTService(cfg *config.Config) *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		Issuer:          cfg.JWT.Issuer,
		Audience:        cfg.JWT.Audience,
		Leeway:          helpers.ParseDuration(cfg.JWT.Leeway, time.Second),
		TokenExpiration: helpers.ParseDuration(cfg.JWT.TokenExpiration, time.Hour),
	})
}

// SetupDatabase establishes the runtime connection pool.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database, nil
}

// RunMigrations applies pending migrations with the migration credentials.
func RunMigrations(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) error {
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	database, err := db.NewMigrationDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect for migrations: %w", err)
	}
	defer database.Close()

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	applied, err := appMigrations.NewMigrator(database.Pool, lgr).MigrateFromDirectory(ctx, migrationsDir)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")
	return nil
}

// SeedDatabase loads the sample catalog through the services.
func SeedDatabase(ctx context.Context, deps *Dependencies) error {
	return seed.CreateDefaultData(ctx, deps.Services.CatalogService, deps.Services.ProgramService, deps.Logger)
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, q db.Querier, lgr zerolog.Logger) (*Dependencies, error) {
	sessionTTL, err := time.ParseDuration(cfg.Views.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid view session ttl: %w", err)
	}

	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(q)
	deps.JWTService = NewJWTService(cfg)
	deps.Hub = websocket.NewHub(logger.Component("websocket"))
	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.Hub)
	deps.Sessions = programdetails.NewSessionStore(cfg.Views.MaxSessions, sessionTTL)

	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.New()
		deps.Metrics.RegisterGauge("program_view_sessions", "Open program details view sessions.", func() float64 {
			return float64(deps.Sessions.Len())
		})
	}

	if pinger, ok := q.(interface{ Ping(context.Context) error }); ok {
		deps.Ping = pinger.Ping
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Services.AuthService)

	deps.ProgramController = appControllers.NewProgramController(deps.Services.ProgramService)
	deps.CatalogController = appControllers.NewCatalogController(deps.Services.CatalogService)
	deps.AuthController = appControllers.NewAuthController(
		helpers.ParseDuration(cfg.JWT.TokenExpiration, time.Hour),
		cfg.IsProduction(),
	)
	deps.ProgramPageController = appControllers.NewProgramPageController(
		deps.Services.ProgramService,
		deps.Sessions,
		deps.Metrics,
		logger.Component("program_details"),
	)
	deps.LiveHandler = websocket.NewHandler(deps.Hub, deps.Services.ProgramService, logger.Component("websocket"))

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		appMiddleware.RequestID(deps.Logger),
		appMiddleware.Recovery(),
		appMiddleware.RequestLogger(),
	)
	if deps.Metrics != nil {
		router.Use(appMiddleware.Metrics(deps.Metrics))
	}

	appRoutes.SetupRouter(router, appRoutes.Handlers{
		Program:     deps.ProgramController,
		Catalog:     deps.CatalogController,
		Auth:        deps.AuthController,
		ProgramPage: deps.ProgramPageController,
		Live:        deps.LiveHandler,
		AuthMW:      deps.AuthMiddleware,
		Ping:        deps.Ping,
		Metrics:     deps.Metrics,
		MetricsPath: cfg.Metrics.Path,
	})

	return router
}
