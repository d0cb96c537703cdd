// Command migrate applies the embedded goose migrations for the configured
// database driver.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/moheuddin/itms/internal/app"
	"github.com/moheuddin/itms/internal/config"
	"github.com/moheuddin/itms/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store, err := app.OpenStore(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	db := store.SQLDB()

	results, err := migrations.Up(ctx, db, cfg.Database.Driver)
	if err != nil {
		logger.Error("apply migrations",
			slog.String("driver", cfg.Database.Driver),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	for _, r := range results {
		logger.Info("migration applied",
			slog.Int64("version", r.Source.Version),
			slog.String("file", r.Source.Path),
			slog.Duration("duration", r.Duration),
		)
	}
	logger.Info("migrations completed",
		slog.String("driver", cfg.Database.Driver),
		slog.Int("applied", len(results)),
	)
}
