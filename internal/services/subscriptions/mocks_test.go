package subscriptions

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/killallgit/subarr/internal/models"
	"github.com/killallgit/subarr/internal/services/folders"
	"github.com/killallgit/subarr/internal/services/metadata"
)

// MockStore is a mock implementation of Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) FindSubscriptionBySource(ctx context.Context, source models.Source, sourceID int64) (*models.Subscription, error) {
	args := m.Called(ctx, source, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockStore) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockStore) CreateEpisode(ctx context.Context, episode *models.Episode) error {
	args := m.Called(ctx, episode)
	return args.Error(0)
}

func (m *MockStore) GetTorrentsBySubscription(ctx context.Context, subscriptionID uint) ([]models.Torrent, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Torrent), args.Error(1)
}

func (m *MockStore) GetEpisodesBySubscription(ctx context.Context, subscriptionID uint) ([]models.Episode, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Episode), args.Error(1)
}

func (m *MockStore) DeleteSubscription(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) FindProfile(ctx context.Context, id uint) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockStore) GetDefaultProfile(ctx context.Context) (*models.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockStore) GetSubscriptionByID(ctx context.Context, id uint) (*models.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockStore) ListSubscriptions(ctx context.Context, filter ListFilter) ([]models.Subscription, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Subscription), args.Get(1).(int64), args.Error(2)
}

// MockProvider is a mock implementation of metadata.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) GetTitleDetail(ctx context.Context, id int64, mediaType models.MediaType) (*metadata.TitleDetail, error) {
	args := m.Called(ctx, id, mediaType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metadata.TitleDetail), args.Error(1)
}

func (m *MockProvider) GetSeasonEpisodes(ctx context.Context, id int64, seasonNumber int) ([]metadata.EpisodeDetail, error) {
	args := m.Called(ctx, id, seasonNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]metadata.EpisodeDetail), args.Error(1)
}

// MockFolders is a mock implementation of FolderManager
type MockFolders struct {
	mock.Mock
}

func (m *MockFolders) CreateFolder(ctx context.Context, d folders.Descriptor) (string, error) {
	args := m.Called(ctx, d)
	return args.String(0), args.Error(1)
}

func (m *MockFolders) DeleteFolder(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

// MockDownloads is a mock implementation of DownloadClient
type MockDownloads struct {
	mock.Mock
}

func (m *MockDownloads) DeleteTorrents(ctx context.Context, hashes []string, deleteFiles bool) error {
	args := m.Called(ctx, hashes, deleteFiles)
	return args.Error(0)
}
