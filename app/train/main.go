package main

import (
	"context"
	"flag"
	"log"

	"fourthandshort/business/training"
	"fourthandshort/internal/modelstore"
	psqlRepo "fourthandshort/internal/repository/postgres"
	"fourthandshort/pkg/config"
	"fourthandshort/pkg/database"
	"fourthandshort/pkg/logger"
)

func main() {
	rows := flag.Int("n", 50000, "synthetic history rows when no -csv is given")
	seed := flag.Int64("seed", 42, "seed for the synthetic generator and the holdout split")
	csvPath := flag.String("csv", "", "optional play-by-play CSV to train on")
	version := flag.String("version", "", "version token to publish (default: current year-month)")
	overwrite := flag.Bool("overwrite", false, "consent to replacing artifacts at an existing version")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	store := modelstore.New(cfg.Decision.ModelsDir)
	trainer := training.NewTrainer(store, psqlRepo.NewModelLedgerRepository(db))

	summary, err := trainer.Train(context.Background(), training.Options{
		Rows:      *rows,
		Seed:      *seed,
		CSVPath:   *csvPath,
		Version:   *version,
		Overwrite: *overwrite,
	})
	if err != nil {
		logger.Fatal("Training failed", "error", err)
	}

	logger.Info("Models published",
		"version", summary.Version,
		"ep_mae", summary.EPMae,
		"wp_brier", summary.WPBrier,
	)
}
