package models

// Source identifies the metadata provider a subscription was created from
type Source string

const (
	SourceTMDB    Source = "tmdb"
	SourceBangumi Source = "bangumi"
)

// Valid reports whether s is a known provider
func (s Source) Valid() bool {
	switch s {
	case SourceTMDB, SourceBangumi:
		return true
	}
	return false
}

// MediaType is the kind of title being tracked
type MediaType string

const (
	MediaTypeTV    MediaType = "tv"
	MediaTypeMovie MediaType = "movie"
	MediaTypeAnime MediaType = "anime"
)

// Valid reports whether m is a known media type
func (m MediaType) Valid() bool {
	switch m {
	case MediaTypeTV, MediaTypeMovie, MediaTypeAnime:
		return true
	}
	return false
}

// DefaultSource returns the provider a media type is looked up on when the
// caller does not name one.
func (m MediaType) DefaultSource() Source {
	if m == MediaTypeAnime {
		return SourceBangumi
	}
	return SourceTMDB
}

// Accepts reports whether titles of this media type can be fetched from s
func (m MediaType) Accepts(s Source) bool {
	switch m {
	case MediaTypeTV, MediaTypeMovie:
		return s == SourceTMDB
	case MediaTypeAnime:
		return s == SourceBangumi
	}
	return false
}

// HasEpisodes reports whether subscriptions of this type carry episode rows
func (m MediaType) HasEpisodes() bool {
	return m == MediaTypeTV || m == MediaTypeAnime
}

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionDisabled SubscriptionStatus = "disabled"
)

type EpisodeStatus string

const (
	EpisodePending     EpisodeStatus = "pending"
	EpisodeDownloading EpisodeStatus = "downloading"
	EpisodeDownloaded  EpisodeStatus = "downloaded"
	EpisodeFailed      EpisodeStatus = "failed"
)
