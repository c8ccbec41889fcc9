// Package catalog holds the read-only recipe table served by the API.
//
// A Catalog is built once at startup and never mutated afterwards, so it
// is shared between request goroutines without locking.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/pageza/vegfinder/backend/internal/model"
)

// Catalog is an immutable, ordered collection of vegetarian recipes
type Catalog struct {
	recipes []model.Recipe
	version string
}

// New builds a catalog from recipes in load order. Non-vegetarian rows are
// dropped and ingredient text is lowercased once here, not per request.
func New(recipes []model.Recipe) *Catalog {
	kept := make([]model.Recipe, 0, len(recipes))
	h := sha256.New()
	for _, r := range recipes {
		if !r.Veg {
			continue
		}
		r.Ingredients = strings.ToLower(r.Ingredients)
		kept = append(kept, r)

		for _, field := range []string{r.Name, r.Ingredients, r.Instructions, r.ImageURL} {
			h.Write([]byte(field))
			h.Write([]byte{0})
		}
	}

	return &Catalog{
		recipes: kept,
		version: hex.EncodeToString(h.Sum(nil))[:16],
	}
}

// Len returns the number of recipes in the catalog
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// Version fingerprints the catalog contents
func (c *Catalog) Version() string {
	return c.version
}

// Each calls fn for every recipe in load order until fn returns false.
// The recipe must not be retained past the call.
func (c *Catalog) Each(fn func(r *model.Recipe) bool) {
	for i := range c.recipes {
		if !fn(&c.recipes[i]) {
			return
		}
	}
}
