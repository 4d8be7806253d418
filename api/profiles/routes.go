package profiles

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/subarr/api/types"
)

// RegisterRoutes registers profile routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", GetAll(deps))
}
