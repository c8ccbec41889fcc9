package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/vegfinder/backend/internal/model"
)

const insertBatchSize = 500

// ListRecipes returns every stored recipe in dataset order
func ListRecipes(ctx context.Context, db *gorm.DB) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := db.WithContext(ctx).Order("position ASC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// ReplaceRecipes swaps the stored table for recipes in a single transaction.
// Positions are reassigned from slice order and missing IDs are generated.
func ReplaceRecipes(ctx context.Context, db *gorm.DB, recipes []model.Recipe) error {
	rows := make([]model.Recipe, len(recipes))
	for i, r := range recipes {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		r.Position = i
		rows[i] = r
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Recipe{}).Error; err != nil {
			return fmt.Errorf("failed to clear recipes: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert recipes: %w", err)
		}
		return nil
	})
}

// CountRecipes returns the number of stored recipes, optionally vegetarian only
func CountRecipes(ctx context.Context, db *gorm.DB, vegOnly bool) (int64, error) {
	var n int64
	q := db.WithContext(ctx).Model(&model.Recipe{})
	if vegOnly {
		q = q.Where("veg = ?", true)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return n, nil
}
