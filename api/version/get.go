package version

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/subarr/api/types"
)

// Get handles version requests
// @Summary      Build information
// @Tags         version
// @Produce      json
// @Success      200 {object} types.VersionResponse
// @Router       /version [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		build := types.BuildInfo{Version: "dev"}
		if deps != nil && deps.Build.Version != "" {
			build = deps.Build
		}
		c.JSON(http.StatusOK, types.VersionResponse{
			Name:      "subarr",
			Version:   build.Version,
			GitCommit: build.GitCommit,
			BuildTime: build.BuildTime,
			Status:    "running",
		})
	}
}
