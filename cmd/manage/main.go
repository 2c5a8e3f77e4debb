// Command manage runs maintenance tasks against the programs database: migrations, sample
// data, development tokens and the server itself.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openedx/programs-admin/internal/bootstrap"
	"github.com/openedx/programs-admin/internal/pkg/logger"
	"github.com/openedx/programs-admin/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "manage",
		Short:         "Programs admin maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", bootstrap.DefaultConfigPath, "path to the yaml configuration")

	root.AddCommand(
		newMigrateCmd(&configPath),
		newSeedCmd(&configPath),
		newTokenCmd(&configPath),
		newServeCmd(&configPath),
	)
	return root
}

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
			if err != nil {
				return err
			}
			return bootstrap.RunMigrations(cmd.Context(), cfg, lgr)
		},
	}
}

func newSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load a sample organization, course codes and program",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
			if err != nil {
				return err
			}
			database, err := bootstrap.SetupDatabase(cfg, lgr)
			if err != nil {
				return err
			}
			defer database.Close()

			deps, err := bootstrap.BuildDependencies(cfg, database.Pool, lgr)
			if err != nil {
				return err
			}
			return bootstrap.SeedDatabase(cmd.Context(), deps)
		},
	}
}

func newTokenCmd(configPath *string) *cobra.Command {
	var (
		email string
		name  string
		admin bool
	)

	cmd := &cobra.Command{
		Use:   "token <username>",
		Short: "Sign a development token the way the identity provider would",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
			if err != nil {
				return err
			}
			token, err := bootstrap.NewJWTService(cfg).GenerateToken(args[0], email, name, admin)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringVar(&name, "name", "", "full name claim")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant the administrator claim")
	return cmd
}

func newServeCmd(configPath *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := server.NewServer(cmd.Context(), server.Options{
				ConfigPath: *configPath,
				Migrate:    migrate,
			})
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}
