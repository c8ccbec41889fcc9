package service

import (
	"context"
	"time"

	"github.com/pageza/vegfinder/backend/internal/catalog"
	"github.com/pageza/vegfinder/backend/internal/logger"
	"github.com/pageza/vegfinder/backend/internal/metrics"
	"github.com/pageza/vegfinder/backend/internal/model"
)

// RecipeService answers ingredient searches against the loaded catalog
type RecipeService struct {
	catalog *catalog.Catalog
	cache   RecipeCache
}

// NewRecipeService creates a new RecipeService. cache may be nil.
func NewRecipeService(c *catalog.Catalog, cache RecipeCache) *RecipeService {
	metrics.CatalogSize.Set(float64(c.Len()))
	return &RecipeService{
		catalog: c,
		cache:   cache,
	}
}

// CatalogSize returns the number of searchable recipes
func (s *RecipeService) CatalogSize() int {
	return s.catalog.Len()
}

// FindByIngredients returns the vegetarian recipes whose ingredients contain
// every comma-separated token of raw. It fails with ErrNoIngredients or
// ErrNonVegetarian before any filtering happens.
func (s *RecipeService) FindByIngredients(ctx context.Context, raw string) ([]model.Recipe, error) {
	log := logger.Ctx(ctx)

	q, err := ParseQuery(raw)
	if err != nil {
		metrics.SearchRequests.WithLabelValues(metrics.OutcomeEmpty).Inc()
		return nil, err
	}

	if banned := q.Banned(); len(banned) > 0 {
		metrics.SearchRequests.WithLabelValues(metrics.OutcomeNonVegetarian).Inc()
		log.Info().Strs("banned", banned).Msg("[RecipeService] rejected non-vegetarian query")
		return nil, ErrNonVegetarian
	}

	key := s.cacheKey(q)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.CacheLookups.WithLabelValues("error").Inc()
			log.Warn().Err(err).Msg("[RecipeService] cache lookup failed")
		case ok:
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			s.recordResult(len(cached))
			return cached, nil
		default:
			metrics.CacheLookups.WithLabelValues("miss").Inc()
		}
	}

	start := time.Now()
	recipes := s.Filter(q)
	log.Debug().
		Strs("tokens", q.Tokens()).
		Int("matches", len(recipes)).
		Dur("elapsed", time.Since(start)).
		Msg("[RecipeService] filtered catalog")

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, recipes); err != nil {
			log.Warn().Err(err).Msg("[RecipeService] cache store failed")
		}
	}

	s.recordResult(len(recipes))
	return recipes, nil
}

// Filter scans the catalog in load order and keeps every recipe matching q.
// The result is never nil.
func (s *RecipeService) Filter(q Query) []model.Recipe {
	matches := []model.Recipe{}
	s.catalog.Each(func(r *model.Recipe) bool {
		if q.Matches(r.Ingredients) {
			matches = append(matches, *r)
		}
		return true
	})
	return matches
}

func (s *RecipeService) cacheKey(q Query) string {
	return s.catalog.Version() + ":" + q.Key()
}

func (s *RecipeService) recordResult(n int) {
	metrics.SearchRequests.WithLabelValues(metrics.OutcomeOK).Inc()
	metrics.SearchResults.Observe(float64(n))
}
