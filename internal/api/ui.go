package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vegfinder/backend/internal/logger"
	"github.com/pageza/vegfinder/backend/internal/metrics"
	"github.com/pageza/vegfinder/backend/internal/service"
	"github.com/pageza/vegfinder/backend/internal/view"
)

const (
	msgNoIngredients = "Please enter at least one ingredient!"
	msgNonVeg        = "Only vegetarian items are allowed!"
	msgSearchFailed  = "Error fetching recipes. Please try again later."
)

// UIHandler serves the server-rendered recipe finder
type UIHandler struct {
	recipeService service.IRecipeService
	renderer      *view.Renderer
	pageSize      int
	limiter       gin.HandlerFunc
}

// NewUIHandler creates the page handler. limiter may be nil; when set it
// guards the results page the same way it guards the JSON search.
func NewUIHandler(recipeService service.IRecipeService, renderer *view.Renderer, pageSize int, limiter gin.HandlerFunc) *UIHandler {
	return &UIHandler{
		recipeService: recipeService,
		renderer:      renderer,
		pageSize:      pageSize,
		limiter:       limiter,
	}
}

func (h *UIHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/", h.Index)
	if h.limiter != nil {
		router.GET("/recipes", h.limiter, h.Results)
		return
	}
	router.GET("/recipes", h.Results)
}

// Index shows the empty search form
func (h *UIHandler) Index(c *gin.Context) {
	h.render(c, http.StatusOK, view.Page{})
}

// Results runs the search and renders the first page of matches, or all of
// them when all=1.
func (h *UIHandler) Results(c *gin.Context) {
	query := c.Query("ingredients")
	showAll := c.Query("all") == "1"

	recipes, err := h.recipeService.FindByIngredients(c.Request.Context(), query)
	switch {
	case errors.Is(err, service.ErrNoIngredients):
		h.render(c, http.StatusBadRequest, view.Page{Query: query, Error: msgNoIngredients})
	case errors.Is(err, service.ErrNonVegetarian):
		h.render(c, http.StatusBadRequest, view.Page{Query: query, Error: msgNonVeg})
	case err != nil:
		metrics.SearchRequests.WithLabelValues(metrics.OutcomeError).Inc()
		logger.Ctx(c.Request.Context()).Error().Err(err).Msg("[UIHandler] search failed")
		h.render(c, http.StatusInternalServerError, view.Page{Query: query, Error: msgSearchFailed})
	default:
		h.render(c, http.StatusOK, view.NewPage(query, recipes, h.pageSize, showAll))
	}
}

func (h *UIHandler) render(c *gin.Context, status int, p view.Page) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, p); err != nil {
		logger.Ctx(c.Request.Context()).Error().Err(err).Msg("[UIHandler] render failed")
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
