package subscriptions

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/subarr/api/types"
	"github.com/killallgit/subarr/internal/services/subscriptions"
)

// Post creates a subscription and imports its episodes
// @Summary      Subscribe to a title
// @Description  Resolves the metadata provider for the media type, fetches the title, allocates its media folder and imports its episodes. tv and movie default to tmdb, anime to bangumi.
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        request body subscriptions.CreateRequest true "Title to subscribe to"
// @Success      201 {object} types.SubscriptionResponse "Created subscription"
// @Failure      400 {object} types.ErrorResponse "Invalid media type or source"
// @Failure      404 {object} types.ErrorResponse "Profile not found"
// @Failure      409 {object} types.ErrorResponse "Already subscribed"
// @Failure      422 {object} types.ErrorResponse "Provider returned unusable metadata"
// @Failure      500 {object} types.ErrorResponse "Storage failure"
// @Failure      502 {object} types.ErrorResponse "Metadata provider unavailable"
// @Router       /api/v1/subscriptions [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req subscriptions.CreateRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		sub, err := deps.Subscriptions.Create(c.Request.Context(), req)
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		types.SendCreated(c, types.SubscriptionResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Subscription created"},
			Data:         types.FromSubscription(sub),
		})
	}
}
