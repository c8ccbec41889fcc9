package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/vegfinder/backend/internal/api"
	"github.com/pageza/vegfinder/backend/internal/middleware"
)

// Options configures the engine built by SetupRouter
type Options struct {
	CORSAllowedOrigins []string
	Handlers           api.Handlers
}

// SetupRouter configures the application routes
func SetupRouter(opts Options) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(opts.CORSAllowedOrigins),
	)
	router.NoRoute(middleware.NotFound())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	api.RegisterRoutes(router, opts.Handlers)

	return router
}
