package subscriptions

import (
	"context"

	"github.com/killallgit/subarr/internal/models"
	"github.com/killallgit/subarr/internal/services/folders"
	"github.com/killallgit/subarr/internal/services/metadata"
)

// Store is the local persistence boundary for subscriptions and their dependents.
// Lookups return ErrNotFound when nothing matches; CreateSubscription returns
// ErrDuplicate when the (source, source_id) pair is already taken.
type Store interface {
	FindSubscriptionBySource(ctx context.Context, source models.Source, sourceID int64) (*models.Subscription, error)
	CreateSubscription(ctx context.Context, sub *models.Subscription) error
	CreateEpisode(ctx context.Context, episode *models.Episode) error
	GetTorrentsBySubscription(ctx context.Context, subscriptionID uint) ([]models.Torrent, error)
	GetEpisodesBySubscription(ctx context.Context, subscriptionID uint) ([]models.Episode, error)
	DeleteSubscription(ctx context.Context, id uint) error
	FindProfile(ctx context.Context, id uint) (*models.Profile, error)
	GetDefaultProfile(ctx context.Context) (*models.Profile, error)

	GetSubscriptionByID(ctx context.Context, id uint) (*models.Subscription, error)
	ListSubscriptions(ctx context.Context, filter ListFilter) ([]models.Subscription, int64, error)
}

// ProfileStore manages quality profiles
type ProfileStore interface {
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	UpsertProfile(ctx context.Context, profile *models.Profile) error
}

// ProviderRegistry resolves the metadata provider for a source
type ProviderRegistry interface {
	Lookup(source models.Source) (metadata.Provider, error)
}

// FolderManager allocates and removes media folders
type FolderManager interface {
	CreateFolder(ctx context.Context, d folders.Descriptor) (string, error)
	DeleteFolder(ctx context.Context, path string) error
}

// DownloadClient releases torrents by content hash
type DownloadClient interface {
	DeleteTorrents(ctx context.Context, hashes []string, deleteFiles bool) error
}

// SubscriptionService is the subscription lifecycle API used by handlers and the CLI
type SubscriptionService interface {
	Create(ctx context.Context, req CreateRequest) (*models.Subscription, error)
	DeleteWithCleanup(ctx context.Context, sub *models.Subscription, deleteFilesOnDisk bool) error
	Delete(ctx context.Context, id uint, deleteFilesOnDisk bool) error
	Get(ctx context.Context, id uint) (*models.Subscription, error)
	List(ctx context.Context, filter ListFilter) ([]models.Subscription, int64, error)
}
