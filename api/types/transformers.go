package types

import (
	"time"

	"github.com/samber/lo"

	"github.com/killallgit/subarr/internal/models"
)

// Subscription is the API view of a subscription
type Subscription struct {
	ID            uint      `json:"id" example:"1"`
	Source        string    `json:"source" example:"tmdb"`
	SourceID      int64     `json:"source_id" example:"1399"`
	MediaType     string    `json:"media_type" example:"tv"`
	Title         string    `json:"title" example:"Game of Thrones"`
	TitleOriginal string    `json:"title_original,omitempty"`
	Overview      string    `json:"overview,omitempty"`
	PosterPath    string    `json:"poster_path,omitempty"`
	BackdropPath  string    `json:"backdrop_path,omitempty"`
	FirstAirDate  *string   `json:"first_air_date" example:"2011-04-17"` // YYYY-MM-DD or null
	VoteAverage   float64   `json:"vote_average" example:"8.4"`
	SeasonNumber  *int      `json:"season_number,omitempty" example:"1"`
	TotalEpisodes int       `json:"total_episodes" example:"10"`
	Status        string    `json:"status" example:"active"`
	FolderPath    string    `json:"folder_path" example:"/media/tv/Game of Thrones (2011)/Season 01"`
	ProfileID     *uint     `json:"profile_id"`
	Profile       *Profile  `json:"profile,omitempty"`
	Episodes      []Episode `json:"episodes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Episode is the API view of an episode
type Episode struct {
	ID            uint    `json:"id"`
	EpisodeNumber int     `json:"episode_number" example:"1"`
	Title         string  `json:"title" example:"Winter Is Coming"`
	AirDate       *string `json:"air_date" example:"2011-04-17"` // YYYY-MM-DD or null
	Overview      string  `json:"overview,omitempty"`
	StillPath     string  `json:"still_path,omitempty"`
	Status        string  `json:"status" example:"pending"`
	TorrentHash   *string `json:"torrent_hash,omitempty"`
}

// Profile is the API view of a quality profile
type Profile struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name" example:"1080p"`
	IsDefault       bool     `json:"is_default"`
	Resolutions     []string `json:"resolutions"`
	Qualities       []string `json:"qualities"`
	Formats         []string `json:"formats"`
	Encoders        []string `json:"encoders"`
	MinSizeMB       int64    `json:"min_size_mb"`
	MaxSizeMB       int64    `json:"max_size_mb"`
	IncludeKeywords []string `json:"include_keywords"`
	ExcludeKeywords []string `json:"exclude_keywords"`
}

// FromSubscription converts a stored subscription, including any loaded episodes and profile
func FromSubscription(s *models.Subscription) *Subscription {
	if s == nil {
		return nil
	}
	return &Subscription{
		ID:            s.ID,
		Source:        string(s.Source),
		SourceID:      s.SourceID,
		MediaType:     string(s.MediaType),
		Title:         s.Title,
		TitleOriginal: s.TitleOriginal,
		Overview:      s.Overview,
		PosterPath:    s.PosterPath,
		BackdropPath:  s.BackdropPath,
		FirstAirDate:  s.FirstAirDate,
		VoteAverage:   s.VoteAverage,
		SeasonNumber:  s.SeasonNumber,
		TotalEpisodes: s.TotalEpisodes,
		Status:        string(s.Status),
		FolderPath:    s.FolderPath,
		ProfileID:     s.ProfileID,
		Profile:       FromProfile(s.Profile),
		Episodes:      lo.Map(s.Episodes, func(e models.Episode, _ int) Episode { return FromEpisode(e) }),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// FromSubscriptionList converts subscriptions for list responses
func FromSubscriptionList(subs []models.Subscription) []Subscription {
	return lo.Map(subs, func(s models.Subscription, _ int) Subscription {
		return *FromSubscription(&s)
	})
}

// FromEpisode converts a stored episode
func FromEpisode(e models.Episode) Episode {
	return Episode{
		ID:            e.ID,
		EpisodeNumber: e.EpisodeNumber,
		Title:         e.Title,
		AirDate:       e.AirDate,
		Overview:      e.Overview,
		StillPath:     e.StillPath,
		Status:        string(e.Status),
		TorrentHash:   e.TorrentHash,
	}
}

// FromProfile converts a stored profile
func FromProfile(p *models.Profile) *Profile {
	if p == nil {
		return nil
	}
	return &Profile{
		ID:              p.ID,
		Name:            p.Name,
		IsDefault:       p.IsDefault,
		Resolutions:     orEmpty(p.Resolutions),
		Qualities:       orEmpty(p.Qualities),
		Formats:         orEmpty(p.Formats),
		Encoders:        orEmpty(p.Encoders),
		MinSizeMB:       p.MinSizeMB,
		MaxSizeMB:       p.MaxSizeMB,
		IncludeKeywords: orEmpty(p.IncludeKeywords),
		ExcludeKeywords: orEmpty(p.ExcludeKeywords),
	}
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
