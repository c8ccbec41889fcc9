package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/vegfinder/backend/internal/model"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// FindByIngredients mocks the FindByIngredients method
func (m *MockRecipeService) FindByIngredients(ctx context.Context, ingredients string) ([]model.Recipe, error) {
	args := m.Called(ctx, ingredients)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// CatalogSize mocks the CatalogSize method
func (m *MockRecipeService) CatalogSize() int {
	return m.Called().Int(0)
}

// MockRecipeCache is a mock implementation of the search result cache
type MockRecipeCache struct {
	mock.Mock
}

// Get mocks the Get method
func (m *MockRecipeCache) Get(ctx context.Context, key string) ([]model.Recipe, bool, error) {
	args := m.Called(ctx, key)
	var recipes []model.Recipe
	if v := args.Get(0); v != nil {
		recipes = v.([]model.Recipe)
	}
	return recipes, args.Bool(1), args.Error(2)
}

// Set mocks the Set method
func (m *MockRecipeCache) Set(ctx context.Context, key string, recipes []model.Recipe) error {
	args := m.Called(ctx, key, recipes)
	return args.Error(0)
}
