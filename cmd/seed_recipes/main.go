package main

import (
	"context"
	"flag"
	"time"

	"github.com/pageza/vegfinder/backend/config"
	"github.com/pageza/vegfinder/backend/internal/database"
	"github.com/pageza/vegfinder/backend/internal/dataset"
	"github.com/pageza/vegfinder/backend/internal/logger"
)

func main() {
	csvPath := flag.String("csv", "", "Recipe CSV to import (defaults to DATASET_PATH)")
	migrationsDir := flag.String("migrations", "migrations", "Directory holding the SQL migrations")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	path := *csvPath
	if path == "" {
		path = cfg.DatasetPath
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	recipes, err := dataset.FileSource{Path: path}.Load(ctx)
	if err != nil {
		logger.Fatal().Err(err).Str("path", path).Msg("Failed to read recipes")
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := database.RunMigrations(db, *migrationsDir); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	if err := database.ReplaceRecipes(ctx, db, recipes); err != nil {
		logger.Fatal().Err(err).Msg("Failed to import recipes")
	}

	veg, err := database.CountRecipes(ctx, db, true)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to count recipes")
	}
	logger.Info().
		Int("rows", len(recipes)).
		Int64("vegetarian", veg).
		Str("path", path).
		Msg("Recipes imported")

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
