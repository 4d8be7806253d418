package subscriptions

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/killallgit/subarr/internal/models"
	"github.com/killallgit/subarr/internal/services/metadata"
	apperrors "github.com/killallgit/subarr/pkg/errors"
)

// buildEpisodes turns provider records into pending Episode rows in provider
// order. Records without a number or name are skipped; so are records whose
// non-empty air date does not parse.
func buildEpisodes(details []metadata.EpisodeDetail, log logrus.FieldLogger) []models.Episode {
	episodes := make([]models.Episode, 0, len(details))
	for i, d := range details {
		name := strings.TrimSpace(d.Name)
		if d.Number == nil || name == "" {
			log.WithField("position", i).
				Debug("Skipping episode without number or name")
			continue
		}

		airDate, err := metadata.NormalizeDate(d.AirDate)
		if err != nil {
			log.WithField("episode_number", *d.Number).
				WithField("raw_air_date", d.AirDate).
				Warn("Skipping episode with malformed air date")
			continue
		}

		episodes = append(episodes, models.Episode{
			EpisodeNumber: *d.Number,
			Title:         name,
			AirDate:       metadata.DatePointer(airDate),
			Overview:      d.Overview,
			StillPath:     d.StillPath,
			Status:        models.EpisodePending,
		})
	}
	return episodes
}

// persistEpisodes writes episodes one by one under subscriptionID. On failure
// the rows already written stay in place and the error is returned.
func (s *Service) persistEpisodes(ctx context.Context, subscriptionID uint, episodes []models.Episode) ([]models.Episode, error) {
	created := make([]models.Episode, 0, len(episodes))
	for i := range episodes {
		ep := episodes[i]
		ep.SubscriptionID = subscriptionID
		if err := s.store.CreateEpisode(ctx, &ep); err != nil {
			return created, apperrors.StorageFailure("create episode", err).
				WithDetail("episode_number", ep.EpisodeNumber).
				WithDetail("episodes_created", len(created))
		}
		created = append(created, ep)
	}
	return created, nil
}

// totalEpisodes picks the episode count recorded on the subscription. The
// provider's own count wins; otherwise the importable episodes are counted.
func totalEpisodes(plan *fetchPlan, detail *metadata.TitleDetail, importable int) int {
	if plan.mediaType == models.MediaTypeTV && plan.season != nil {
		if season, ok := detail.Season(*plan.season); ok && season.EpisodeCount > 0 {
			return season.EpisodeCount
		}
		return importable
	}
	if detail.TotalEpisodes > 0 {
		return detail.TotalEpisodes
	}
	return importable
}
