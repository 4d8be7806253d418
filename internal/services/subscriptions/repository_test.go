package subscriptions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/subarr/internal/database"
	"github.com/killallgit/subarr/internal/models"
	"github.com/killallgit/subarr/pkg/logger"
)

func setupRepository(t *testing.T) (*Repository, *database.DB) {
	t.Helper()
	db, err := database.Initialize(database.Options{Path: ":memory:"}, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())
	return NewRepository(db.DB), db
}

func newSubscription(source models.Source, sourceID int64, title string) *models.Subscription {
	return &models.Subscription{
		Source:    source,
		SourceID:  sourceID,
		MediaType: models.MediaTypeTV,
		Title:     title,
		Status:    models.SubscriptionActive,
	}
}

func TestRepository_CreateAndFindBySource(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	_, err := repo.FindSubscriptionBySource(ctx, models.SourceTMDB, 1399)
	assert.ErrorIs(t, err, ErrNotFound)

	sub := newSubscription(models.SourceTMDB, 1399, "Game of Thrones")
	require.NoError(t, repo.CreateSubscription(ctx, sub))
	assert.NotZero(t, sub.ID)

	found, err := repo.FindSubscriptionBySource(ctx, models.SourceTMDB, 1399)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, found.ID)
	assert.Equal(t, "Game of Thrones", found.Title)

	// Same id from another catalog is a different title
	_, err = repo.FindSubscriptionBySource(ctx, models.SourceBangumi, 1399)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_CreateSubscription_Duplicate(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateSubscription(ctx, newSubscription(models.SourceTMDB, 1, "Show")))

	err := repo.CreateSubscription(ctx, newSubscription(models.SourceTMDB, 1, "Show"))
	assert.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, repo.CreateSubscription(ctx, &models.Subscription{
		Source:    models.SourceBangumi,
		SourceID:  1,
		MediaType: models.MediaTypeAnime,
		Title:     "Anime",
	}))
}

func TestRepository_EpisodesAndTorrents(t *testing.T) {
	repo, db := setupRepository(t)
	ctx := context.Background()

	sub := newSubscription(models.SourceTMDB, 1, "Show")
	require.NoError(t, repo.CreateSubscription(ctx, sub))

	hash := "abcdef"
	for i, title := range []string{"Pilot", "Second"} {
		ep := &models.Episode{
			SubscriptionID: sub.ID,
			EpisodeNumber:  i + 1,
			Title:          title,
			Status:         models.EpisodePending,
		}
		if i == 1 {
			ep.TorrentHash = &hash
		}
		require.NoError(t, repo.CreateEpisode(ctx, ep))
	}
	require.NoError(t, db.Create(&models.Torrent{SubscriptionID: sub.ID, Hash: "123456"}).Error)

	episodes, err := repo.GetEpisodesBySubscription(ctx, sub.ID)
	require.NoError(t, err)
	require.Len(t, episodes, 2)
	assert.Equal(t, "Pilot", episodes[0].Title)
	require.NotNil(t, episodes[1].TorrentHash)
	assert.Equal(t, hash, *episodes[1].TorrentHash)

	torrents, err := repo.GetTorrentsBySubscription(ctx, sub.ID)
	require.NoError(t, err)
	require.Len(t, torrents, 1)
	assert.Equal(t, "123456", torrents[0].Hash)

	none, err := repo.GetTorrentsBySubscription(ctx, sub.ID+100)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepository_DeleteSubscription(t *testing.T) {
	repo, db := setupRepository(t)
	ctx := context.Background()

	sub := newSubscription(models.SourceTMDB, 1, "Show")
	require.NoError(t, repo.CreateSubscription(ctx, sub))
	require.NoError(t, repo.CreateEpisode(ctx, &models.Episode{SubscriptionID: sub.ID, EpisodeNumber: 1, Title: "Pilot"}))
	require.NoError(t, db.Create(&models.Torrent{SubscriptionID: sub.ID, Hash: "aa"}).Error)

	require.NoError(t, repo.DeleteSubscription(ctx, sub.ID))

	for _, model := range []any{&models.Subscription{}, &models.Episode{}, &models.Torrent{}} {
		var count int64
		require.NoError(t, db.Unscoped().Model(model).Count(&count).Error)
		assert.Zero(t, count, "%T rows left behind", model)
	}

	// The same title can be subscribed to again
	require.NoError(t, repo.CreateSubscription(ctx, newSubscription(models.SourceTMDB, 1, "Show")))

	assert.ErrorIs(t, repo.DeleteSubscription(ctx, 9999), ErrNotFound)
}

func TestRepository_Profiles(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	_, err := repo.GetDefaultProfile(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.FindProfile(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	hd := &models.Profile{Name: "hd", IsDefault: true, Resolutions: []string{"1080p"}}
	require.NoError(t, repo.UpsertProfile(ctx, hd))
	uhd := &models.Profile{Name: "uhd", Resolutions: []string{"2160p"}}
	require.NoError(t, repo.UpsertProfile(ctx, uhd))

	def, err := repo.GetDefaultProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hd", def.Name)

	// Promoting uhd demotes hd and keeps its id
	promoted := &models.Profile{Name: "uhd", IsDefault: true, Resolutions: []string{"2160p", "1080p"}}
	require.NoError(t, repo.UpsertProfile(ctx, promoted))
	assert.Equal(t, uhd.ID, promoted.ID)

	def, err = repo.GetDefaultProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "uhd", def.Name)
	assert.Equal(t, []string{"2160p", "1080p"}, []string(def.Resolutions))

	found, err := repo.FindProfile(ctx, hd.ID)
	require.NoError(t, err)
	assert.False(t, found.IsDefault)

	profiles, err := repo.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "hd", profiles[0].Name)
	assert.Equal(t, "uhd", profiles[1].Name)
}

func TestRepository_GetSubscriptionByID(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	profile := &models.Profile{Name: "hd"}
	require.NoError(t, repo.UpsertProfile(ctx, profile))

	sub := newSubscription(models.SourceTMDB, 1, "Show")
	sub.ProfileID = &profile.ID
	require.NoError(t, repo.CreateSubscription(ctx, sub))
	require.NoError(t, repo.CreateEpisode(ctx, &models.Episode{SubscriptionID: sub.ID, EpisodeNumber: 2, Title: "Two"}))
	require.NoError(t, repo.CreateEpisode(ctx, &models.Episode{SubscriptionID: sub.ID, EpisodeNumber: 1, Title: "One"}))

	loaded, err := repo.GetSubscriptionByID(ctx, sub.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Profile)
	assert.Equal(t, "hd", loaded.Profile.Name)
	require.Len(t, loaded.Episodes, 2)
	assert.Equal(t, 1, loaded.Episodes[0].EpisodeNumber)
	assert.Equal(t, 2, loaded.Episodes[1].EpisodeNumber)

	_, err = repo.GetSubscriptionByID(ctx, sub.ID+1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_ListSubscriptions(t *testing.T) {
	repo, db := setupRepository(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		sub := newSubscription(models.SourceTMDB, int64(i+1), "Show")
		if i%2 == 1 {
			sub.MediaType = models.MediaTypeMovie
		}
		sub.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.CreateSubscription(ctx, sub))
	}
	require.NoError(t, db.Model(&models.Subscription{}).Where("source_id = ?", 5).
		Update("status", models.SubscriptionDisabled).Error)

	all, total, err := repo.ListSubscriptions(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, all, 5)
	assert.Equal(t, int64(5), all[0].SourceID, "newest first")

	page, total, err := repo.ListSubscriptions(ctx, ListFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	assert.Equal(t, int64(3), page[0].SourceID)

	movies, total, err := repo.ListSubscriptions(ctx, ListFilter{MediaType: models.MediaTypeMovie})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, movies, 2)

	active, total, err := repo.ListSubscriptions(ctx, ListFilter{Status: models.SubscriptionActive})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, active, 4)
}

func TestListFilter_Normalized(t *testing.T) {
	f := ListFilter{Page: -1, Limit: 1000}.normalized()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, maxListLimit, f.Limit)
	assert.Equal(t, 0, f.offset())

	f = ListFilter{Page: 3}.normalized()
	assert.Equal(t, defaultListLimit, f.Limit)
	assert.Equal(t, 2*defaultListLimit, f.offset())
}
