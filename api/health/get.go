package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/subarr/api/types"
)

const (
	statusHealthy       = "healthy"
	statusUnhealthy     = "unhealthy"
	statusNotConfigured = "not configured"
)

// Get handles health check requests
// @Summary      Health check
// @Description  Reports database and download client status. Returns 503 when the database is unreachable; an unreachable download client only degrades the status.
// @Tags         health
// @Produce      json
// @Success      200 {object} types.HealthResponse
// @Failure      503 {object} types.HealthResponse
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		response := types.HealthResponse{
			Status:     "ok",
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Database:   databaseStatus(ctx, deps),
			Downloader: downloaderStatus(ctx, deps),
		}

		code := http.StatusOK
		switch {
		case response.Database.Status == statusUnhealthy:
			response.Status = "unhealthy"
			code = http.StatusServiceUnavailable
		case response.Downloader.Status == statusUnhealthy:
			response.Status = "degraded"
		}
		c.JSON(code, response)
	}
}

func databaseStatus(ctx context.Context, deps *types.Dependencies) types.ComponentStatus {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return types.ComponentStatus{Status: statusNotConfigured}
	}
	if err := deps.DB.HealthCheck(ctx); err != nil {
		return types.ComponentStatus{Status: statusUnhealthy, Error: err.Error()}
	}
	return types.ComponentStatus{Status: statusHealthy}
}

func downloaderStatus(ctx context.Context, deps *types.Dependencies) types.ComponentStatus {
	if deps == nil || deps.Downloads == nil {
		return types.ComponentStatus{Status: statusNotConfigured}
	}
	version, err := deps.Downloads.Version(ctx)
	if err != nil {
		return types.ComponentStatus{Status: statusUnhealthy, Error: err.Error()}
	}
	return types.ComponentStatus{Status: statusHealthy, Version: version}
}
