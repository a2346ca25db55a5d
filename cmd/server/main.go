// Package main implements the entry point for the drill API server, which
// serves verb conjugation practice sessions and tracks per-learner mastery
// with spaced repetition.
package main

import (
	"flag"
	"log"
	"log/slog"

	"github.com/languro/drill-api/internal/config"
	"github.com/languro/drill-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status, version) and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := logger.Setup(cfg.Server.LogLevel); err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if *migrateCmd != "" {
		if err := runMigrationCommand(cfg, *migrateCmd); err != nil {
			slog.Error("migration command failed",
				"command", *migrateCmd,
				"error", err)
			log.Fatalf("Migration failed: %v", err)
		}
		return
	}

	app, err := newApplication(cfg)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		slog.Error("server exited with error", "error", err)
		log.Fatalf("Server error: %v", err)
	}
}
