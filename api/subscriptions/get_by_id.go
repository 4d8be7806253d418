package subscriptions

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/subarr/api/types"
)

// GetByID returns a subscription with its profile and episodes
// @Summary      Get a subscription
// @Tags         subscriptions
// @Produce      json
// @Param        id path int true "Subscription ID"
// @Success      200 {object} types.SubscriptionResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/subscriptions/{id} [get]
func GetByID(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		sub, err := deps.Subscriptions.Get(c.Request.Context(), id)
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		types.SendSuccess(c, types.SubscriptionResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Subscription retrieved"},
			Data:         types.FromSubscription(sub),
		})
	}
}
