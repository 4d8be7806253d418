package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/subarr/api/health"
	"github.com/killallgit/subarr/api/profiles"
	"github.com/killallgit/subarr/api/subscriptions"
	"github.com/killallgit/subarr/api/types"
	"github.com/killallgit/subarr/api/version"
	_ "github.com/killallgit/subarr/docs/swagger"
)

// RegisterRoutes registers all API routes. limit, when non-nil, guards the /api/v1 group.
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, limit gin.HandlerFunc) {
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	engine.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(NotFoundHandler())

	v1 := engine.Group("/api/v1")
	if limit != nil {
		v1.Use(limit)
	}

	if deps.Subscriptions != nil {
		subscriptions.RegisterRoutes(v1.Group("/subscriptions"), deps)
	}
	if deps.Profiles != nil {
		profiles.RegisterRoutes(v1.Group("/profiles"), deps)
	}
}
