package main

import (
	"context"
	"os"

	"github.com/openedx/programs-admin/internal/pkg/logger"
	"github.com/openedx/programs-admin/internal/server"
)

// @title Programs Admin API
// @version 1.0
// @description Administration of programs, their organizations, course codes and run modes.

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey JWTAuth
// @in header
// @name Authorization
// @description Identity provider token, as "JWT <token>" or "Bearer <token>"

func main() {
	ctx := context.Background()

	srv, err := server.NewServer(ctx, server.Options{
		ConfigPath: os.Getenv("CONFIG_PATH"),
		Migrate:    true,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
