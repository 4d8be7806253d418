package subscriptions

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/subarr/api/types"
	"github.com/killallgit/subarr/internal/models"
	"github.com/killallgit/subarr/internal/services/subscriptions"
)

// GetAll lists subscriptions, newest first
// @Summary      List subscriptions
// @Tags         subscriptions
// @Produce      json
// @Param        media_type query string false "Filter by media type" Enums(tv, movie, anime)
// @Param        status     query string false "Filter by status" Enums(active, disabled)
// @Param        page       query int    false "Page number" minimum(1) default(1)
// @Param        limit      query int    false "Page size" minimum(1) maximum(100) default(20)
// @Success      200 {object} types.SubscriptionsResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/v1/subscriptions [get]
func GetAll(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query types.ListSubscriptionsQuery
		if !types.BindQueryOrError(c, &query) {
			return
		}
		if query.Page == 0 {
			query.Page = 1
		}
		if query.Limit == 0 {
			query.Limit = 20
		}

		subs, total, err := deps.Subscriptions.List(c.Request.Context(), subscriptions.ListFilter{
			MediaType: models.MediaType(query.MediaType),
			Status:    models.SubscriptionStatus(query.Status),
			Page:      query.Page,
			Limit:     query.Limit,
		})
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		types.SendSuccess(c, types.SubscriptionsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Subscriptions retrieved"},
			Data:         types.FromSubscriptionList(subs),
			Count:        len(subs),
			Total:        total,
			Page:         query.Page,
			Limit:        query.Limit,
		})
	}
}
