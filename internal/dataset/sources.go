package dataset

import (
	"context"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/pageza/vegfinder/backend/config"
	"github.com/pageza/vegfinder/backend/internal/database"
	"github.com/pageza/vegfinder/backend/internal/logger"
	"github.com/pageza/vegfinder/backend/internal/model"
)

// ObjectOpener streams an object by key; *config.S3Config satisfies it
type ObjectOpener interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// S3Source loads the recipe CSV from object storage
type S3Source struct {
	Store ObjectOpener
	Key   string
}

func (s S3Source) Load(ctx context.Context) ([]model.Recipe, error) {
	body, err := s.Store.Open(ctx, s.Key)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	recipes, err := Load(body)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", s.Key, err)
	}
	logger.Ctx(ctx).Info().Str("key", s.Key).Int("rows", len(recipes)).Msg("[Dataset] loaded recipes from s3")
	return recipes, nil
}

// DatabaseSource loads recipes previously imported with seed_recipes
type DatabaseSource struct {
	DB *gorm.DB
}

func (s DatabaseSource) Load(ctx context.Context) ([]model.Recipe, error) {
	recipes, err := database.ListRecipes(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info().Int("rows", len(recipes)).Msg("[Dataset] loaded recipes from database")
	return recipes, nil
}

// NewSource picks the source named by cfg.DatasetSource. db is only
// consulted for the database source and s3 only for the s3 source.
func NewSource(cfg *config.Config, db *gorm.DB, s3 ObjectOpener) (Source, error) {
	switch cfg.DatasetSource {
	case config.DatasetSourceFile, "":
		return FileSource{Path: cfg.DatasetPath}, nil
	case config.DatasetSourceS3:
		if s3 == nil {
			return nil, fmt.Errorf("s3 dataset source requires an object store")
		}
		return S3Source{Store: s3, Key: cfg.S3DatasetKey}, nil
	case config.DatasetSourceDatabase:
		if db == nil {
			return nil, fmt.Errorf("database dataset source requires a database connection")
		}
		return DatabaseSource{DB: db}, nil
	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.DatasetSource)
	}
}
