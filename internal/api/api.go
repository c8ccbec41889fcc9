package api

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups everything mounted on the engine
type Handlers struct {
	Recipe *RecipeHandler
	Health *HealthHandler
	UI     *UIHandler
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, h Handlers) {
	h.Health.RegisterRoutes(router)
	h.Recipe.RegisterLegacyRoutes(router)

	v1 := router.Group("/api/v1")
	h.Recipe.RegisterRoutes(v1)

	if h.UI != nil {
		h.UI.RegisterRoutes(router)
	}
}
