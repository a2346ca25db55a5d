package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver

	"github.com/languro/drill-api/internal/config"
	"github.com/languro/drill-api/internal/domain/srs"
	"github.com/languro/drill-api/internal/platform/postgres"
	"github.com/languro/drill-api/internal/service/drill"
	"github.com/languro/drill-api/internal/store"
)

// application holds the wired dependencies of the running server.
type application struct {
	config       *config.Config
	logger       *slog.Logger
	db           *sql.DB
	drillService drill.DrillService
}

// newApplication opens the database, applies pending migrations, and wires
// the stores, services, and scheduler together.
func newApplication(cfg *config.Config) (*application, error) {
	log := slog.Default()

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	drillItemStore := postgres.NewPostgresDrillItemStore(db, log)
	conjugationStore := postgres.NewPostgresConjugationStore(db, log)
	attemptStore := postgres.NewPostgresAttemptStore(db, log)
	masteryStore := postgres.NewPostgresMasteryStore(db, log)

	validator := drill.NewAnswerValidator(conjugationStore, cfg.Drill.AccentLanguages, log)
	srsService := srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		IncorrectRetryMinutes: cfg.SRS.IncorrectRetryMinutes,
		FirstIntervalDays:     cfg.SRS.FirstIntervalDays,
		SecondIntervalDays:    cfg.SRS.SecondIntervalDays,
		ThirdIntervalDays:     cfg.SRS.ThirdIntervalDays,
		MaxIntervalDays:       cfg.SRS.MaxIntervalDays,
		CorrectScoreDelta:     cfg.SRS.CorrectScoreDelta,
		IncorrectScorePenalty: cfg.SRS.IncorrectScorePenalty,
	}))

	drillService := drill.NewDrillService(
		drillItemStore,
		attemptStore,
		masteryStore,
		validator,
		srsService,
		store.NewTransactor(db),
		nil, // time-seeded rng
		log,
	)

	return &application{
		config:       cfg,
		logger:       log,
		db:           db,
		drillService: drillService,
	}, nil
}

// Run starts the HTTP server and blocks until shutdown. SIGINT and SIGTERM
// trigger a graceful drain bounded by the configured shutdown timeout.
func (app *application) Run() error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		app.logger.Info("shutdown signal received", "signal", sig.String())
	}

	timeout := time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	app.logger.Info("server stopped")
	return nil
}

// Close releases the application's resources.
func (app *application) Close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Warn("failed to close database connection", "error", err)
		}
	}
}
