package metadata

import (
	"context"
	"errors"

	"github.com/killallgit/subarr/internal/models"
)

// ErrTitleNotFound is returned by providers when the id does not exist upstream
var ErrTitleNotFound = errors.New("title not found")

// Provider fetches read-only title metadata from one catalog
type Provider interface {
	// Name identifies the provider in logs and errors
	Name() string

	// GetTitleDetail returns the title-level record for id
	GetTitleDetail(ctx context.Context, id int64, mediaType models.MediaType) (*TitleDetail, error)

	// GetSeasonEpisodes returns the episodes of one season in provider order.
	// Catalogs without seasons return the whole episode list.
	GetSeasonEpisodes(ctx context.Context, id int64, seasonNumber int) ([]EpisodeDetail, error)
}

// TitleDetail is the provider-neutral view of a show, movie or anime subject.
// ReleaseDate is passed through unnormalised.
type TitleDetail struct {
	Name          string          `json:"name"`
	OriginalName  string          `json:"original_name"`
	Overview      string          `json:"overview"`
	PosterPath    string          `json:"poster_path"`
	BackdropPath  string          `json:"backdrop_path"`
	ReleaseDate   string          `json:"release_date"`
	Rating        float64         `json:"rating"`
	TotalEpisodes int             `json:"total_episodes"`
	Seasons       []SeasonSummary `json:"seasons,omitempty"`
}

// SeasonSummary describes one season listed on a title
type SeasonSummary struct {
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
	EpisodeCount int    `json:"episode_count"`
	AirDate      string `json:"air_date"`
}

// Season returns the summary for number, if the title lists it
func (t *TitleDetail) Season(number int) (SeasonSummary, bool) {
	for _, s := range t.Seasons {
		if s.SeasonNumber == number {
			return s, true
		}
	}
	return SeasonSummary{}, false
}

// EpisodeDetail is one provider episode record. Number is nil when the
// provider omitted it; AirDate is passed through unnormalised.
type EpisodeDetail struct {
	Number    *int   `json:"number"`
	Name      string `json:"name"`
	AirDate   string `json:"air_date"`
	Overview  string `json:"overview"`
	StillPath string `json:"still_path"`
}
