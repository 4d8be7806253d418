package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/killallgit/subarr/internal/models"
	"github.com/killallgit/subarr/internal/services/cache"
)

// CachedProvider memoises a Provider's responses and collapses concurrent
// identical fetches into one upstream call.
type CachedProvider struct {
	next  Provider
	cache cache.Cache
	ttl   time.Duration
	group singleflight.Group
	log   logrus.FieldLogger
}

var _ Provider = (*CachedProvider)(nil)

// NewCachedProvider wraps next with c
func NewCachedProvider(next Provider, c cache.Cache, ttl time.Duration, log logrus.FieldLogger) *CachedProvider {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CachedProvider{
		next:  next,
		cache: c,
		ttl:   ttl,
		log:   log.WithField("provider", next.Name()),
	}
}

func (p *CachedProvider) Name() string {
	return p.next.Name()
}

func (p *CachedProvider) GetTitleDetail(ctx context.Context, id int64, mediaType models.MediaType) (*TitleDetail, error) {
	key := fmt.Sprintf("%s:title:%s:%d", p.next.Name(), mediaType, id)
	var detail TitleDetail
	err := p.load(ctx, key, &detail, func() (any, error) {
		return p.next.GetTitleDetail(ctx, id, mediaType)
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (p *CachedProvider) GetSeasonEpisodes(ctx context.Context, id int64, seasonNumber int) ([]EpisodeDetail, error) {
	key := fmt.Sprintf("%s:season:%d:%d", p.next.Name(), id, seasonNumber)
	var episodes []EpisodeDetail
	err := p.load(ctx, key, &episodes, func() (any, error) {
		return p.next.GetSeasonEpisodes(ctx, id, seasonNumber)
	})
	if err != nil {
		return nil, err
	}
	return episodes, nil
}

// load decodes a cached value into out, or fetches, stores and decodes it.
// Errors are never cached.
func (p *CachedProvider) load(ctx context.Context, key string, out any, fetch func() (any, error)) error {
	if raw, ok := p.cache.Get(ctx, key); ok {
		if err := json.Unmarshal(raw, out); err == nil {
			return nil
		}
		p.log.WithField("key", key).Warn("discarding undecodable cache entry")
		_ = p.cache.Delete(ctx, key)
	}

	v, err, _ := p.group.Do(key, func() (any, error) {
		// a flight that finished since the lookup above has already stored it
		if raw, ok := p.cache.Get(ctx, key); ok && json.Valid(raw) {
			return raw, nil
		}
		value, err := fetch()
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", key, err)
		}
		if err := p.cache.Set(ctx, key, raw, p.ttl); err != nil {
			p.log.WithError(err).WithField("key", key).Warn("failed to cache provider response")
		}
		return raw, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(v.([]byte), out)
}
