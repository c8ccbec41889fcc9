package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vegfinder/backend/internal/logger"
	"github.com/pageza/vegfinder/backend/internal/metrics"
	"github.com/pageza/vegfinder/backend/internal/model"
	"github.com/pageza/vegfinder/backend/internal/service"
)

// SearchRequest is the body accepted by the search endpoints
type SearchRequest struct {
	Ingredients string `json:"ingredients"`
}

// SearchResponse wraps the matching recipes
type SearchResponse struct {
	Recipes []model.RecipeResponse `json:"recipes"`
}

type RecipeHandler struct {
	recipeService service.IRecipeService
	limiter       gin.HandlerFunc
}

// NewRecipeHandler creates a handler. limiter may be nil.
func NewRecipeHandler(recipeService service.IRecipeService, limiter gin.HandlerFunc) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		limiter:       limiter,
	}
}

// RegisterRoutes mounts the versioned search endpoint on router
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/search", h.handlers()...)
	}
}

// RegisterLegacyRoutes mounts POST /predict for existing clients
func (h *RecipeHandler) RegisterLegacyRoutes(router gin.IRoutes) {
	router.POST("/predict", h.handlers()...)
}

func (h *RecipeHandler) handlers() []gin.HandlerFunc {
	if h.limiter != nil {
		return []gin.HandlerFunc{h.limiter, h.Search}
	}
	return []gin.HandlerFunc{h.Search}
}

// Search returns the vegetarian recipes containing every requested ingredient
func (h *RecipeHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipes, err := h.recipeService.FindByIngredients(c.Request.Context(), req.Ingredients)
	if err != nil {
		if status, ok := clientError(err); ok {
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		metrics.SearchRequests.WithLabelValues(metrics.OutcomeError).Inc()
		logger.Ctx(c.Request.Context()).Error().Err(err).Msg("[RecipeHandler] search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search recipes"})
		return
	}

	c.JSON(http.StatusOK, SearchResponse{Recipes: model.Responses(recipes)})
}

func clientError(err error) (int, bool) {
	switch {
	case errors.Is(err, service.ErrNoIngredients), errors.Is(err, service.ErrNonVegetarian):
		return http.StatusBadRequest, true
	default:
		return 0, false
	}
}
