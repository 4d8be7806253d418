package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Subscription is a tracked TV show, movie or anime title
type Subscription struct {
	gorm.Model
	// Provider identity; the pair is unique
	Source   Source `json:"source" gorm:"not null;uniqueIndex:idx_subscription_source,priority:1"`
	SourceID int64  `json:"source_id" gorm:"not null;uniqueIndex:idx_subscription_source,priority:2"`

	MediaType     MediaType `json:"media_type" gorm:"not null;index"`
	Title         string    `json:"title" gorm:"not null"`
	TitleOriginal string    `json:"title_original"`
	Overview      string    `json:"overview" gorm:"type:text"`
	PosterPath    string    `json:"poster_path"`
	BackdropPath  string    `json:"backdrop_path"`
	FirstAirDate  *string   `json:"first_air_date"` // YYYY-MM-DD or null
	VoteAverage   float64   `json:"vote_average"`
	SeasonNumber  *int      `json:"season_number"` // tv only
	TotalEpisodes int       `json:"total_episodes"`

	Status     SubscriptionStatus `json:"status" gorm:"not null;default:active"`
	FolderPath string             `json:"folder_path"`

	ProfileID *uint    `json:"profile_id" gorm:"index"`
	Profile   *Profile `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`

	Episodes []Episode `json:"episodes,omitempty" gorm:"foreignKey:SubscriptionID"`
	Torrents []Torrent `json:"torrents,omitempty" gorm:"foreignKey:SubscriptionID"`
}

// Episode belongs to exactly one subscription
type Episode struct {
	gorm.Model
	SubscriptionID uint          `json:"subscription_id" gorm:"not null;index"`
	EpisodeNumber  int           `json:"episode_number" gorm:"not null"`
	Title          string        `json:"title" gorm:"not null"`
	AirDate        *string       `json:"air_date"` // YYYY-MM-DD or null, never a raw provider value
	Overview       string        `json:"overview" gorm:"type:text"`
	StillPath      string        `json:"still_path"`
	Status         EpisodeStatus `json:"status" gorm:"not null;default:pending"`
	TorrentHash    *string       `json:"torrent_hash"`
	FilePath       *string       `json:"file_path"`
}

// Torrent is a download attempt for a subscription, optionally tied to one episode
type Torrent struct {
	gorm.Model
	SubscriptionID uint    `json:"subscription_id" gorm:"not null;index"`
	EpisodeID      *uint   `json:"episode_id" gorm:"index"`
	Hash           string  `json:"hash" gorm:"not null;index"`
	Title          string  `json:"title"`
	Status         string  `json:"status"`
	Size           int64   `json:"size"`
	Progress       float64 `json:"progress"`
}

// Profile is a named quality-matching ruleset
type Profile struct {
	gorm.Model
	Name      string `json:"name" gorm:"uniqueIndex;not null" yaml:"name"`
	IsDefault bool   `json:"is_default" gorm:"default:false;index" yaml:"default"`

	Resolutions datatypes.JSONSlice[string] `json:"resolutions" yaml:"resolutions"`
	Qualities   datatypes.JSONSlice[string] `json:"qualities" yaml:"qualities"`
	Formats     datatypes.JSONSlice[string] `json:"formats" yaml:"formats"`
	Encoders    datatypes.JSONSlice[string] `json:"encoders" yaml:"encoders"`

	MinSizeMB int64 `json:"min_size_mb" yaml:"min_size_mb"`
	MaxSizeMB int64 `json:"max_size_mb" yaml:"max_size_mb"`

	IncludeKeywords datatypes.JSONSlice[string] `json:"include_keywords" yaml:"include_keywords"`
	ExcludeKeywords datatypes.JSONSlice[string] `json:"exclude_keywords" yaml:"exclude_keywords"`
}

// AllModels returns every persisted model in migration order
func AllModels() []any {
	return []any{
		&Profile{},
		&Subscription{},
		&Episode{},
		&Torrent{},
	}
}
