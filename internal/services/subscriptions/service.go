package subscriptions

import (
	"context"
	"errors"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/killallgit/subarr/internal/models"
	"github.com/killallgit/subarr/internal/services/folders"
	"github.com/killallgit/subarr/internal/services/metadata"
	apperrors "github.com/killallgit/subarr/pkg/errors"
)

// Service orchestrates subscription creation and teardown across the
// metadata providers, the media folders, the download client and the store.
type Service struct {
	store     Store
	providers ProviderRegistry
	folders   FolderManager
	downloads DownloadClient
	log       logrus.FieldLogger
}

var _ SubscriptionService = (*Service)(nil)

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithLogger sets the logger used for progress and best-effort failures
func WithLogger(log logrus.FieldLogger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a subscription service. downloads may be nil when no
// download client is configured; teardown then only logs the skipped hashes.
func NewService(store Store, providers ProviderRegistry, folderManager FolderManager, downloads DownloadClient, opts ...ServiceOption) *Service {
	s := &Service{
		store:     store,
		providers: providers,
		folders:   folderManager,
		downloads: downloads,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create subscribes to a provider title, allocates its media folder and
// imports its episodes. Steps already committed are kept when a later step
// fails.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Subscription, error) {
	plan, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	plan.profile, err = s.resolveProfile(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNotSubscribed(ctx, plan); err != nil {
		return nil, err
	}

	log := s.log.WithField("source", plan.source).
		WithField("source_id", plan.sourceID).
		WithField("media_type", plan.mediaType)

	detail, err := plan.provider.GetTitleDetail(ctx, plan.sourceID, plan.mediaType)
	if err != nil {
		return nil, apperrors.ProviderUnavailable(plan.provider.Name(), err)
	}
	title := strings.TrimSpace(detail.Name)
	if title == "" {
		return nil, apperrors.UnprocessableMetadata("title", errors.New("provider returned an empty title"))
	}
	releaseDate, err := metadata.NormalizeDate(detail.ReleaseDate)
	if err != nil {
		log.WithField("raw_release_date", detail.ReleaseDate).Warn("Rejecting title with malformed release date")
		return nil, apperrors.UnprocessableMetadata("release date", err)
	}

	var fetched []metadata.EpisodeDetail
	if plan.wantsEpisodes() {
		fetched, err = plan.provider.GetSeasonEpisodes(ctx, plan.sourceID, plan.seasonNumber())
		if err != nil {
			return nil, apperrors.ProviderUnavailable(plan.provider.Name(), err)
		}
	}

	built := buildEpisodes(fetched, log)

	firstAirDate := metadata.DatePointer(releaseDate)
	folderPath, err := s.folders.CreateFolder(ctx, folders.Descriptor{
		MediaType:    plan.mediaType,
		Title:        title,
		Year:         metadata.Year(firstAirDate),
		SeasonNumber: plan.season,
	})
	if err != nil {
		return nil, apperrors.StorageFailure("create media folder", err)
	}

	sub := &models.Subscription{
		Source:        plan.source,
		SourceID:      plan.sourceID,
		MediaType:     plan.mediaType,
		Title:         title,
		TitleOriginal: detail.OriginalName,
		Overview:      detail.Overview,
		PosterPath:    detail.PosterPath,
		BackdropPath:  detail.BackdropPath,
		FirstAirDate:  firstAirDate,
		VoteAverage:   detail.Rating,
		SeasonNumber:  plan.season,
		TotalEpisodes: totalEpisodes(plan, detail, len(built)),
		Status:        models.SubscriptionActive,
		FolderPath:    folderPath,
	}
	if plan.profile != nil {
		sub.ProfileID = &plan.profile.ID
	}

	if err := s.store.CreateSubscription(ctx, sub); err != nil {
		if errors.Is(err, ErrDuplicate) {
			log.WithField("folder_path", folderPath).Warn("Lost subscription race, media folder left in place")
			return nil, apperrors.AlreadySubscribed(string(plan.source), plan.sourceID)
		}
		return nil, apperrors.StorageFailure("create subscription", err)
	}
	sub.Profile = plan.profile

	log = log.WithField("subscription_id", sub.ID)
	episodes, err := s.persistEpisodes(ctx, sub.ID, built)
	sub.Episodes = episodes
	if err != nil {
		log.WithError(err).Error("Episode import aborted")
		return nil, err
	}

	log.WithField("title", sub.Title).
		WithField("episodes", len(episodes)).
		WithField("skipped", len(fetched)-len(built)).
		Info("Subscription created")
	return sub, nil
}

// DeleteWithCleanup releases the torrents and, optionally, the media folder
// of sub, then removes it from the store. Only the store deletion can fail
// the call.
func (s *Service) DeleteWithCleanup(ctx context.Context, sub *models.Subscription, deleteFilesOnDisk bool) error {
	log := s.log.WithField("subscription_id", sub.ID)

	torrents, err := s.store.GetTorrentsBySubscription(ctx, sub.ID)
	if err != nil {
		log.WithError(err).Warn("Failed to list torrents, continuing deletion")
	}
	episodes, err := s.store.GetEpisodesBySubscription(ctx, sub.ID)
	if err != nil {
		log.WithError(err).Warn("Failed to list episodes, continuing deletion")
	}

	if hashes := collectHashes(torrents, episodes); len(hashes) > 0 {
		switch {
		case s.downloads == nil:
			log.WithField("hashes", hashes).Warn("No download client configured, torrents left in place")
		default:
			if err := s.downloads.DeleteTorrents(ctx, hashes, deleteFilesOnDisk); err != nil {
				log.WithError(err).WithField("hashes", hashes).Warn("Failed to remove torrents from download client")
			} else {
				log.WithField("count", len(hashes)).Debug("Removed torrents from download client")
			}
		}
	}

	if deleteFilesOnDisk && sub.FolderPath != "" {
		if err := s.folders.DeleteFolder(ctx, sub.FolderPath); err != nil {
			log.WithError(err).WithField("folder_path", sub.FolderPath).Warn("Failed to remove media folder")
		}
	}

	if err := s.store.DeleteSubscription(ctx, sub.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperrors.NotFound("subscription", sub.ID)
		}
		return apperrors.StorageFailure("delete subscription", err)
	}

	log.WithField("delete_files", deleteFilesOnDisk).Info("Subscription deleted")
	return nil
}

// Delete loads the subscription by id and runs DeleteWithCleanup on it
func (s *Service) Delete(ctx context.Context, id uint, deleteFilesOnDisk bool) error {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.DeleteWithCleanup(ctx, sub, deleteFilesOnDisk)
}

// Get returns one subscription with its profile and episodes
func (s *Service) Get(ctx context.Context, id uint) (*models.Subscription, error) {
	sub, err := s.store.GetSubscriptionByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperrors.NotFound("subscription", id)
		}
		return nil, apperrors.StorageFailure("get subscription", err)
	}
	return sub, nil
}

// List returns a page of subscriptions and the total matching count
func (s *Service) List(ctx context.Context, filter ListFilter) ([]models.Subscription, int64, error) {
	if filter.MediaType != "" && !filter.MediaType.Valid() {
		return nil, 0, apperrors.ValidationError("media_type", "unknown media type")
	}
	subs, total, err := s.store.ListSubscriptions(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.StorageFailure("list subscriptions", err)
	}
	return subs, total, nil
}

// collectHashes gathers the torrent hashes held by torrents and episodes,
// lower-cased and de-duplicated, in first-seen order.
func collectHashes(torrents []models.Torrent, episodes []models.Episode) []string {
	fromTorrents := lo.Map(torrents, func(t models.Torrent, _ int) string {
		return t.Hash
	})
	fromEpisodes := lo.FilterMap(episodes, func(e models.Episode, _ int) (string, bool) {
		if e.TorrentHash == nil {
			return "", false
		}
		return *e.TorrentHash, true
	})

	hashes := lo.FilterMap(append(fromTorrents, fromEpisodes...), func(h string, _ int) (string, bool) {
		h = strings.ToLower(strings.TrimSpace(h))
		return h, h != ""
	})
	return lo.Uniq(hashes)
}
