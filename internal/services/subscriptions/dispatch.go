package subscriptions

import (
	"context"
	"errors"

	"github.com/killallgit/subarr/internal/models"
	"github.com/killallgit/subarr/internal/services/metadata"
	apperrors "github.com/killallgit/subarr/pkg/errors"
)

// fetchPlan is the validated form of a CreateRequest: which provider to ask,
// for what, and which profile the subscription will carry.
type fetchPlan struct {
	mediaType models.MediaType
	source    models.Source
	sourceID  int64
	season    *int
	provider  metadata.Provider
	profile   *models.Profile
}

// wantsEpisodes reports whether the provider's episode list is fetched:
// a chosen season for TV, the whole list for anime, never for movies.
func (p *fetchPlan) wantsEpisodes() bool {
	if !p.mediaType.HasEpisodes() {
		return false
	}
	return p.mediaType != models.MediaTypeTV || p.season != nil
}

func (p *fetchPlan) seasonNumber() int {
	if p.season == nil {
		return 0
	}
	return *p.season
}

// validate checks the request shape and picks the provider without touching
// the network or the store.
func (s *Service) validate(req CreateRequest) (*fetchPlan, error) {
	if !req.MediaType.Valid() {
		return nil, apperrors.InvalidSource("unknown media_type %q", req.MediaType)
	}
	if req.SourceID <= 0 {
		return nil, apperrors.InvalidSource("source_id must be a positive integer, got %d", req.SourceID)
	}

	source := req.Source
	if source == "" {
		source = req.MediaType.DefaultSource()
	}
	if !source.Valid() {
		return nil, apperrors.InvalidSource("unknown source %q", source)
	}
	if !req.MediaType.Accepts(source) {
		return nil, apperrors.InvalidSource("source %q cannot serve media_type %q", source, req.MediaType)
	}

	plan := &fetchPlan{
		mediaType: req.MediaType,
		source:    source,
		sourceID:  req.SourceID,
	}
	if req.MediaType == models.MediaTypeTV && req.SeasonNumber != nil {
		if *req.SeasonNumber < 0 {
			return nil, apperrors.InvalidSource("season_number must not be negative, got %d", *req.SeasonNumber)
		}
		season := *req.SeasonNumber
		plan.season = &season
	}

	provider, err := s.providers.Lookup(source)
	if err != nil {
		return nil, apperrors.ProviderUnavailable(string(source), err)
	}
	plan.provider = provider
	return plan, nil
}

// resolveProfile applies the explicit profile, else the default, else none
func (s *Service) resolveProfile(ctx context.Context, profileID *uint) (*models.Profile, error) {
	if profileID != nil {
		profile, err := s.store.FindProfile(ctx, *profileID)
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, apperrors.ProfileNotFound(*profileID)
		case err != nil:
			return nil, apperrors.StorageFailure("find profile", err)
		}
		return profile, nil
	}

	profile, err := s.store.GetDefaultProfile(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, apperrors.StorageFailure("get default profile", err)
	}
	return profile, nil
}

// ensureNotSubscribed is the fast-path duplicate check; the store's unique
// index remains the authority under concurrency.
func (s *Service) ensureNotSubscribed(ctx context.Context, plan *fetchPlan) error {
	existing, err := s.store.FindSubscriptionBySource(ctx, plan.source, plan.sourceID)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil
	case err != nil:
		return apperrors.StorageFailure("find subscription", err)
	}
	s.log.WithField("subscription_id", existing.ID).
		WithField("source", plan.source).
		WithField("source_id", plan.sourceID).
		Info("Subscription already exists")
	return apperrors.AlreadySubscribed(string(plan.source), plan.sourceID)
}
