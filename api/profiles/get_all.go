package profiles

import (
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/killallgit/subarr/api/types"
	"github.com/killallgit/subarr/internal/models"
	apperrors "github.com/killallgit/subarr/pkg/errors"
)

// GetAll lists quality profiles
// @Summary      List quality profiles
// @Tags         profiles
// @Produce      json
// @Success      200 {object} types.ProfilesResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/v1/profiles [get]
func GetAll(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		profiles, err := deps.Profiles.ListProfiles(c.Request.Context())
		if err != nil {
			deps.Log().WithError(err).Error("Failed to list profiles")
			types.SendAppError(c, apperrors.StorageFailure("list profiles", err))
			return
		}

		types.SendSuccess(c, types.ProfilesResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Profiles retrieved"},
			Data: lo.Map(profiles, func(p models.Profile, _ int) types.Profile {
				return *types.FromProfile(&p)
			}),
			Count: len(profiles),
		})
	}
}
