package subscriptions

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/subarr/api/types"
)

// RegisterRoutes registers subscription routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", Post(deps))
	router.GET("", GetAll(deps))
	router.GET("/:id", GetByID(deps))
	router.DELETE("/:id", Delete(deps))
}
