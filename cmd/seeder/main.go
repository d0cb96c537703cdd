// Command seeder loads a YAML fixture of articles into the configured
// article store. It is intended to be run offline, not as part of the
// main server.
//
// Flags:
//
//	--file           path to the fixture (overrides seeder config)
//	--dry-run        validate the fixture without writing to DB
//	--seeder-config  path to seeder YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/moheuddin/itms/internal/app"
	"github.com/moheuddin/itms/internal/app/seeder"
	"github.com/moheuddin/itms/internal/config"
)

// Compile-time interface assertion.
var _ seeder.ArticleBulkRepo = (app.ArticleStore)(nil)

func main() {
	fileFlag := flag.String("file", "", "path to the article fixture")
	dryRunFlag := flag.Bool("dry-run", false, "validate the fixture without writing to DB")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		log.Fatalf("load seeder config: %v", err)
	}

	// CLI flags override config.
	if *fileFlag != "" {
		seederCfg.FixturePath = *fileFlag
	}
	if *dryRunFlag {
		seederCfg.DryRun = true
	}
	if seederCfg.FixturePath == "" {
		log.Fatal("fixture path not configured: pass --file or set SEEDER_FIXTURE_PATH")
	}

	fx, err := seeder.LoadFixture(seederCfg.FixturePath)
	if err != nil {
		log.Fatalf("load fixture: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	var (
		logger *slog.Logger
		repo   seeder.ArticleBulkRepo
	)
	if seederCfg.DryRun {
		logger = app.NewLogger(config.LogConfig{Level: "info", Format: "text"})
	} else {
		appCfg, err := config.Load()
		if err != nil {
			log.Fatalf("load app config: %v", err)
		}
		logger = app.NewLogger(appCfg.Log)

		store, err := app.OpenStore(ctx, appCfg.Database)
		if err != nil {
			logger.Error("connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer store.Close()
		repo = store.Articles
	}

	pipeline := seeder.NewPipeline(logger, repo, *seederCfg)
	result, err := pipeline.Run(ctx, fx)
	if err != nil {
		logger.Error("seeding failed",
			slog.Int("inserted", result.Inserted),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	if result.Invalid > 0 {
		logger.Warn("seeding completed with invalid rows", slog.Int("invalid", result.Invalid))
		os.Exit(1)
	}
}
