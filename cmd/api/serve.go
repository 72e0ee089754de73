package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker/config"
	"github.com/GoSim-25-26J-441/project-tracker/internal/bootstrap"
	"github.com/GoSim-25-26J-441/project-tracker/internal/logging"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/repository"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the HTTP server until SIGINT or SIGTERM, then drain in-flight
requests for up to HTTP_SHUTDOWN_TIMEOUT.

Examples:
  # Serve with ./data/projects.db
  api serve

  # Serve against PostgreSQL
  DB_DRIVER=pgx DB_HOST=localhost api serve --env-file prod.env`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootstrap.SetGinMode(cfg)

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{Config: &cfg.Database})
	if err != nil {
		log.Error("database unavailable", zap.String("driver", cfg.Database.Driver), zap.Error(err))
		return err
	}
	defer db.Close()

	svc := service.NewProjectService(repository.NewProjectRepository(db), log.Named("projects"))
	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:      cfg.App.Name,
		Version:          cfg.App.Version,
		Logger:           log.Named("http"),
		DB:               db,
		Projects:         svc,
		CORSAllowOrigins: cfg.Server.CORSAllowOrigins,
		RateLimitRPS:     cfg.RateLimit.RPS,
		RateLimitBurst:   cfg.RateLimit.Burst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Environment),
			zap.String("db_driver", cfg.Database.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// setup loads configuration and builds the root logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	log, err := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	log = log.With(zap.String("service", cfg.App.Name), zap.String("version", cfg.App.Version))
	return cfg, log, nil
}
