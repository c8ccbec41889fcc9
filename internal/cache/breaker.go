package cache

import (
	"context"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/pageza/vegfinder/backend/internal/logger"
	"github.com/pageza/vegfinder/backend/internal/metrics"
	"github.com/pageza/vegfinder/backend/internal/model"
	"github.com/pageza/vegfinder/backend/internal/service"
)

// lookup carries a Get result through the breaker
type lookup struct {
	recipes []model.Recipe
	hit     bool
}

// BreakerCache stops calling a failing cache until it has had time to recover.
// While open, Get reports gobreaker.ErrOpenState and Set is dropped with the same error.
type BreakerCache struct {
	next service.RecipeCache
	cb   *gobreaker.CircuitBreaker[lookup]
}

// BreakerSettings tunes when the circuit opens and how long it stays open
type BreakerSettings struct {
	Name             string
	Timeout          time.Duration
	Interval         time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

// DefaultBreakerSettings opens after 60% failures over at least 10 calls
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:             "redis-cache",
		Timeout:          30 * time.Second,
		Interval:         time.Minute,
		MinRequests:      10,
		FailureThreshold: 0.6,
	}
}

// NewBreakerCache wraps next with a circuit breaker
func NewBreakerCache(next service.RecipeCache, s BreakerSettings) *BreakerCache {
	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[lookup](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= s.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("[CacheBreaker] state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})

	return &BreakerCache{next: next, cb: cb}
}

func (b *BreakerCache) Get(ctx context.Context, key string) ([]model.Recipe, bool, error) {
	res, err := b.cb.Execute(func() (lookup, error) {
		recipes, hit, err := b.next.Get(ctx, key)
		return lookup{recipes: recipes, hit: hit}, err
	})
	if err != nil {
		return nil, false, err
	}
	return res.recipes, res.hit, nil
}

func (b *BreakerCache) Set(ctx context.Context, key string, recipes []model.Recipe) error {
	_, err := b.cb.Execute(func() (lookup, error) {
		return lookup{}, b.next.Set(ctx, key, recipes)
	})
	return err
}

// State returns the current breaker state
func (b *BreakerCache) State() gobreaker.State {
	return b.cb.State()
}

// Status reports the breaker state for /health. An open breaker is unhealthy.
func (b *BreakerCache) Status() (string, bool) {
	state := b.State()
	return state.String(), state != gobreaker.StateOpen
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
