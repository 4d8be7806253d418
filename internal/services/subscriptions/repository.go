package subscriptions

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/killallgit/subarr/internal/models"
)

type Repository struct {
	db *gorm.DB
}

var (
	_ Store        = (*Repository)(nil)
	_ ProfileStore = (*Repository)(nil)
)

// NewRepository creates a gorm-backed store. The connection must be opened
// with TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindSubscriptionBySource looks a subscription up by its provider identity
func (r *Repository) FindSubscriptionBySource(ctx context.Context, source models.Source, sourceID int64) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Where("source = ? AND source_id = ?", source, sourceID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("finding subscription %s:%d: %w", source, sourceID, err)
	}
	return &sub, nil
}

// CreateSubscription inserts sub and fills in its ID
func (r *Repository) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("subscription %s:%d: %w", sub.Source, sub.SourceID, ErrDuplicate)
		}
		return fmt.Errorf("creating subscription: %w", err)
	}
	return nil
}

// CreateEpisode inserts a single episode
func (r *Repository) CreateEpisode(ctx context.Context, episode *models.Episode) error {
	if err := r.db.WithContext(ctx).Create(episode).Error; err != nil {
		return fmt.Errorf("creating episode %d for subscription %d: %w", episode.EpisodeNumber, episode.SubscriptionID, err)
	}
	return nil
}

// GetTorrentsBySubscription lists the torrents attached to a subscription
func (r *Repository) GetTorrentsBySubscription(ctx context.Context, subscriptionID uint) ([]models.Torrent, error) {
	var torrents []models.Torrent
	if err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("id").
		Find(&torrents).Error; err != nil {
		return nil, fmt.Errorf("getting torrents for subscription %d: %w", subscriptionID, err)
	}
	return torrents, nil
}

// GetEpisodesBySubscription lists episodes in insertion order
func (r *Repository) GetEpisodesBySubscription(ctx context.Context, subscriptionID uint) ([]models.Episode, error) {
	var episodes []models.Episode
	if err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("id").
		Find(&episodes).Error; err != nil {
		return nil, fmt.Errorf("getting episodes for subscription %d: %w", subscriptionID, err)
	}
	return episodes, nil
}

// DeleteSubscription hard-deletes a subscription together with its episodes and
// torrents, so the same provider title can be subscribed to again.
func (r *Repository) DeleteSubscription(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("subscription_id = ?", id).Delete(&models.Torrent{}).Error; err != nil {
			return fmt.Errorf("deleting torrents of subscription %d: %w", id, err)
		}
		if err := tx.Unscoped().Where("subscription_id = ?", id).Delete(&models.Episode{}).Error; err != nil {
			return fmt.Errorf("deleting episodes of subscription %d: %w", id, err)
		}
		result := tx.Unscoped().Delete(&models.Subscription{}, id)
		if result.Error != nil {
			return fmt.Errorf("deleting subscription %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// FindProfile returns the profile with the given id
func (r *Repository) FindProfile(ctx context.Context, id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting profile %d: %w", id, err)
	}
	return &profile, nil
}

// GetDefaultProfile returns the designated default profile
func (r *Repository) GetDefaultProfile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Where("is_default = ?", true).
		Order("id").
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting default profile: %w", err)
	}
	return &profile, nil
}

// GetSubscriptionByID loads a subscription with its profile and episodes
func (r *Repository) GetSubscriptionByID(ctx context.Context, id uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Episodes", func(db *gorm.DB) *gorm.DB { return db.Order("episode_number, id") }).
		First(&sub, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting subscription %d: %w", id, err)
	}
	return &sub, nil
}

// ListSubscriptions returns a page of subscriptions, newest first, and the total count
func (r *Repository) ListSubscriptions(ctx context.Context, filter ListFilter) ([]models.Subscription, int64, error) {
	filter = filter.normalized()

	query := r.db.WithContext(ctx).Model(&models.Subscription{})
	if filter.MediaType != "" {
		query = query.Where("media_type = ?", filter.MediaType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting subscriptions: %w", err)
	}

	var subs []models.Subscription
	if err := query.
		Order("created_at DESC, id DESC").
		Offset(filter.offset()).
		Limit(filter.Limit).
		Find(&subs).Error; err != nil {
		return nil, 0, fmt.Errorf("listing subscriptions: %w", err)
	}
	return subs, total, nil
}

// ListProfiles returns every profile ordered by name
func (r *Repository) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.WithContext(ctx).Order("name").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	return profiles, nil
}

// UpsertProfile creates or replaces a profile by name. Marking a profile as
// default clears the flag on every other profile.
func (r *Repository) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Profile
		err := tx.Where("name = ?", profile.Name).First(&existing).Error
		switch {
		case err == nil:
			profile.ID = existing.ID
			profile.CreatedAt = existing.CreatedAt
			if err := tx.Save(profile).Error; err != nil {
				return fmt.Errorf("updating profile %q: %w", profile.Name, err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(profile).Error; err != nil {
				return fmt.Errorf("creating profile %q: %w", profile.Name, err)
			}
		default:
			return fmt.Errorf("checking existing profile %q: %w", profile.Name, err)
		}

		if profile.IsDefault {
			if err := tx.Model(&models.Profile{}).
				Where("id <> ? AND is_default = ?", profile.ID, true).
				Update("is_default", false).Error; err != nil {
				return fmt.Errorf("clearing previous default profile: %w", err)
			}
		}
		return nil
	})
}
