package service

import (
	"context"

	"github.com/pageza/vegfinder/backend/internal/model"
)

// IRecipeService defines the interface for recipe search operations
type IRecipeService interface {
	FindByIngredients(ctx context.Context, ingredients string) ([]model.Recipe, error)
	CatalogSize() int
}

// RecipeCache stores search results keyed by catalog version and token set
type RecipeCache interface {
	Get(ctx context.Context, key string) ([]model.Recipe, bool, error)
	Set(ctx context.Context, key string, recipes []model.Recipe) error
}
