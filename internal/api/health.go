package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks an optional backing dependency
type Pinger func(ctx context.Context) error

// StateReporter describes an in-process component such as a circuit breaker.
// healthy false marks the service degraded.
type StateReporter func() (state string, healthy bool)

type HealthHandler struct {
	recipes func() int
	checks  map[string]Pinger
	states  map[string]StateReporter
}

// NewHealthHandler reports the catalog size plus the state of each named check
func NewHealthHandler(recipes func() int, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{recipes: recipes, checks: checks}
}

// ReportState adds a named component state to the dependencies section
func (h *HealthHandler) ReportState(name string, report StateReporter) *HealthHandler {
	if h.states == nil {
		h.states = make(map[string]StateReporter)
	}
	h.states[name] = report
	return h
}

func (h *HealthHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/health", h.HealthCheck)
}

// HealthCheck returns the health status of the API. A failing optional
// dependency marks the status degraded but still answers 200.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	body := gin.H{
		"status":  "ok",
		"recipes": h.recipes(),
	}

	if len(h.checks) == 0 && len(h.states) == 0 {
		c.JSON(http.StatusOK, body)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	deps := gin.H{}
	for name, ping := range h.checks {
		if err := ping(ctx); err != nil {
			deps[name] = "unavailable"
			body["status"] = "degraded"
			continue
		}
		deps[name] = "ok"
	}
	for name, report := range h.states {
		state, healthy := report()
		deps[name] = state
		if !healthy {
			body["status"] = "degraded"
		}
	}
	body["dependencies"] = deps

	c.JSON(http.StatusOK, body)
}
