package model

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is one row of the recipe dataset
type Recipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Position     int       `gorm:"not null;index" json:"-"`
	Name         string    `gorm:"size:512;not null" json:"name"`
	Ingredients  string    `gorm:"type:text;not null" json:"ingredients"`
	Instructions string    `gorm:"type:text" json:"instructions"`
	ImageURL     string    `gorm:"size:1024" json:"image_url"`
	Veg          bool      `gorm:"not null;default:false;index" json:"veg"`
	CreatedAt    time.Time `json:"created_at"`
}

// RecipeResponse is the wire shape returned by the search endpoints
type RecipeResponse struct {
	Name         string `json:"recipe_name"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	Image        string `json:"image"`
}

// Response converts the recipe to its wire shape
func (r Recipe) Response() RecipeResponse {
	return RecipeResponse{
		Name:         r.Name,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Image:        r.ImageURL,
	}
}

// Responses converts recipes in order. A nil input yields an empty, non-nil slice.
func Responses(recipes []Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Response())
	}
	return out
}
