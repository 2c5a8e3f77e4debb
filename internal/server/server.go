package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/openedx/programs-admin/internal/bootstrap"
	"github.com/openedx/programs-admin/internal/config"
	"github.com/openedx/programs-admin/internal/db"
	"github.com/openedx/programs-admin/internal/pkg/helpers"
)

// Options tune NewServer
type Options struct {
	ConfigPath string
	// Migrate applies pending migrations before serving
	Migrate bool
}

// Server holds the state for the HTTP server.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	database *db.PostgresDB
	deps     *bootstrap.Dependencies
	logger   zerolog.Logger
	http     *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer(ctx context.Context, opts Options) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	if opts.Migrate {
		if err := bootstrap.RunMigrations(ctx, cfg, lgr); err != nil {
			return nil, err
		}
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, database.Pool, lgr)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	if cfg.Database.Seed {
		if err := bootstrap.SeedDatabase(ctx, deps); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return &Server{
		config:   cfg,
		router:   bootstrap.SetupRouter(cfg, deps),
		database: database,
		deps:     deps,
		logger:   lgr,
	}, nil
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  helpers.ParseDuration(s.config.Server.ReadTimeout, 10*time.Second),
		WriteTimeout: helpers.ParseDuration(s.config.Server.WriteTimeout, 10*time.Second),
		IdleTimeout:  120 * time.Second,
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	var hubDone sync.WaitGroup
	hubDone.Add(1)
	go func() {
		defer hubDone.Done()
		s.deps.Hub.Run(hubCtx)
	}()

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("error starting server: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown requested, stopping server...")
	}

	shutdownErr := s.Shutdown(context.Background())

	// live page connections are hijacked, so the hub closes them after the HTTP server stops
	stopHub()
	hubDone.Wait()

	return errors.Join(runErr, shutdownErr)
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := helpers.ParseDuration(s.config.Server.ShutdownTimeout, 10*time.Second)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var shutdownErr error
	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownErr = fmt.Errorf("http shutdown: %w", err)
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	if s.database != nil {
		s.database.Close()
		s.logger.Info().Msg("Database connection pool closed.")
	}

	return shutdownErr
}
