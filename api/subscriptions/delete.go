package subscriptions

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/subarr/api/types"
)

// Delete removes a subscription after releasing its torrents.
// Download client and folder cleanup failures are logged, not returned.
// @Summary      Delete a subscription
// @Tags         subscriptions
// @Produce      json
// @Param        id           path  int  true  "Subscription ID"
// @Param        delete_files query bool false "Also delete downloaded data and the media folder (defaults to qbittorrent.delete_files)"
// @Success      200 {object} types.BaseResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      404 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/v1/subscriptions/{id} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}
		var query types.DeleteSubscriptionQuery
		if !types.BindQueryOrError(c, &query) {
			return
		}

		deleteFiles := deps.DeleteFiles
		if query.DeleteFiles != nil {
			deleteFiles = *query.DeleteFiles
		}

		if err := deps.Subscriptions.Delete(c.Request.Context(), id, deleteFiles); err != nil {
			types.SendAppError(c, err)
			return
		}

		types.SendSuccess(c, types.BaseResponse{Status: types.StatusOK, Message: "Subscription deleted"})
	}
}
