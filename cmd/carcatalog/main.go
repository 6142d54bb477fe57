// Command carcatalog runs the car catalog API and its maintenance tasks:
//
//	carcatalog            serve the HTTP API (same as `serve`)
//	carcatalog migrate    apply database migrations
//	carcatalog seed       insert the baseline brands, cars and admin
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/carcatalog/internal/config"
	"github.com/deppfellow/carcatalog/internal/database"
	"github.com/deppfellow/carcatalog/internal/logger"
	"github.com/deppfellow/carcatalog/internal/repository"
	"github.com/deppfellow/carcatalog/internal/router"
	"github.com/deppfellow/carcatalog/internal/seed"
	"github.com/deppfellow/carcatalog/internal/server"
	"github.com/deppfellow/carcatalog/internal/service"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app is what every command needs before it runs.
type app struct {
	cfg           *config.Config
	logger        zerolog.Logger
	loggerService *logger.LoggerService
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "carcatalog",
		Short:         "Car catalog REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.loggerService = logger.NewLoggerService(cfg.Observability)
			a.logger = logger.NewLoggerWithService(cfg.Observability, a.loggerService)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.loggerService.Shutdown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the HTTP API",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.serve(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.migrate(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Insert the baseline catalog and admin account",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.seed(cmd.Context())
			},
		},
	)

	return cmd
}

func (a *app) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !a.cfg.Observability.IsProduction() {
		if err := database.Migrate(ctx, &a.logger, a.cfg); err != nil {
			a.logger.Error().Err(err).Msg("failed to migrate database")
			return err
		}
	}

	srv, err := server.New(a.cfg, &a.logger, a.loggerService)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	srv.SetupHTTPServer(router.NewRouter(srv, services))

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			a.logger.Error().Err(err).Msg("server stopped unexpectedly")
			_ = srv.Shutdown(context.Background())
			return err
		}
	case <-ctx.Done():
		a.logger.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	a.logger.Info().Msg("server exited properly")
	return nil
}

func (a *app) migrate(ctx context.Context) error {
	if err := database.Migrate(ctx, &a.logger, a.cfg); err != nil {
		a.logger.Error().Err(err).Msg("failed to migrate database")
		return err
	}
	return nil
}

func (a *app) seed(ctx context.Context) error {
	db, err := database.New(a.cfg, &a.logger, a.loggerService)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to connect to database")
		return err
	}
	defer db.Close()

	users := repository.NewUserRepository(db.Pool)
	hasher := service.NewAuthService(users, nil, a.cfg.Auth, &a.logger)

	seeder := seed.NewSeeder(
		repository.NewBrandRepository(db.Pool),
		repository.NewCarRepository(db.Pool),
		users,
		hasher,
		a.cfg.Seed,
		&a.logger,
	)

	if _, err := seeder.Run(ctx); err != nil {
		a.logger.Error().Err(err).Msg("seed failed")
		return err
	}
	return nil
}
