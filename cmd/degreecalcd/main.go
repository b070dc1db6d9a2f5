// Command degreecalcd is the degreecalc registry service. It serves the
// classification REST API backed by Postgres and a report archive.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/degreecalc/degreecalc/internal/api"
	"github.com/degreecalc/degreecalc/internal/archive"
	"github.com/degreecalc/degreecalc/internal/cohort"
	"github.com/degreecalc/degreecalc/internal/logger"
	"github.com/degreecalc/degreecalc/internal/platform"
	"github.com/degreecalc/degreecalc/internal/records"
	"github.com/degreecalc/degreecalc/pkg/classification"
)

func main() {
	cfg := loadConfig()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("degreecalcd exited")
	}
}

func run(cfg config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	if err := platform.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info().Msg("database migrations applied")

	reports, err := archive.New(ctx, cfg.Archive)
	if err != nil {
		return fmt.Errorf("archive: %w", err)
	}

	var opts []classification.Option
	if cfg.StrictMarks {
		opts = append(opts, classification.WithStrictRange())
	}
	engine := classification.NewEngine(opts...)

	// Initialize services
	store := records.NewService(db)
	cohorts := cohort.NewService(store, reports, engine, log)
	handler := api.NewHandler(engine, store, cohorts, reports, api.NewResultCache(cfg.ResultCacheSize), log)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: handler.Router(api.Options{
			APIKey:         cfg.APIKey,
			AllowedOrigins: cfg.AllowedOrigins,
			HealthCheck:    db.PingContext,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("archive", cfg.Archive.Backend).
			Bool("strict", cfg.StrictMarks).
			Msg("starting degreecalcd")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen: %w", err)
		}
		close(errCh)
	}()

	// Graceful shutdown
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	return nil
}
