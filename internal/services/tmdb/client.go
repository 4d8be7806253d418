package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/killallgit/subarr/internal/models"
	"github.com/killallgit/subarr/internal/services/metadata"
)

const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	DefaultLanguage = "en-US"
	providerName    = "tmdb"
)

// Config holds configuration for the TMDB client
type Config struct {
	APIKey    string
	BaseURL   string
	Language  string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables limiting
	Burst     int
}

// Client fetches TV, movie and season details from TMDB
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
	limiter    *rate.Limiter
}

var _ metadata.Provider = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient creates a TMDB client
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     apiKey,
		language:   cfg.Language,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Name() string {
	return providerName
}

// GetTVDetails fetches /tv/{id}
func (c *Client) GetTVDetails(ctx context.Context, id int64) (*TVDetails, error) {
	var out TVDetails
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", id), &out); err != nil {
		return nil, fmt.Errorf("tmdb tv %d: %w", id, err)
	}
	return &out, nil
}

// GetMovieDetails fetches /movie/{id}
func (c *Client) GetMovieDetails(ctx context.Context, id int64) (*MovieDetails, error) {
	var out MovieDetails
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), &out); err != nil {
		return nil, fmt.Errorf("tmdb movie %d: %w", id, err)
	}
	return &out, nil
}

// GetSeasonDetails fetches /tv/{id}/season/{n}
func (c *Client) GetSeasonDetails(ctx context.Context, id int64, seasonNumber int) (*SeasonDetails, error) {
	var out SeasonDetails
	if err := c.get(ctx, fmt.Sprintf("/tv/%d/season/%d", id, seasonNumber), &out); err != nil {
		return nil, fmt.Errorf("tmdb tv %d season %d: %w", id, seasonNumber, err)
	}
	return &out, nil
}

// GetTitleDetail maps TV or movie details onto the provider-neutral shape
func (c *Client) GetTitleDetail(ctx context.Context, id int64, mediaType models.MediaType) (*metadata.TitleDetail, error) {
	switch mediaType {
	case models.MediaTypeTV:
		tv, err := c.GetTVDetails(ctx, id)
		if err != nil {
			return nil, err
		}
		return tvToTitle(tv), nil
	case models.MediaTypeMovie:
		movie, err := c.GetMovieDetails(ctx, id)
		if err != nil {
			return nil, err
		}
		return movieToTitle(movie), nil
	default:
		return nil, fmt.Errorf("tmdb does not serve media type %q", mediaType)
	}
}

// GetSeasonEpisodes maps one season's episodes onto the provider-neutral shape
func (c *Client) GetSeasonEpisodes(ctx context.Context, id int64, seasonNumber int) ([]metadata.EpisodeDetail, error) {
	season, err := c.GetSeasonDetails(ctx, id, seasonNumber)
	if err != nil {
		return nil, err
	}
	episodes := make([]metadata.EpisodeDetail, 0, len(season.Episodes))
	for _, e := range season.Episodes {
		episodes = append(episodes, metadata.EpisodeDetail{
			Number:    e.EpisodeNumber,
			Name:      e.Name,
			AirDate:   e.AirDate,
			Overview:  e.Overview,
			StillPath: e.StillPath,
		})
	}
	return episodes, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)
	endpoint := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return metadata.ErrTitleNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.StatusMessage != "" {
			return fmt.Errorf("returned %d: %s (latency=%v)", resp.StatusCode, apiErr.StatusMessage, time.Since(start))
		}
		return fmt.Errorf("returned %d (latency=%v)", resp.StatusCode, time.Since(start))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func tvToTitle(tv *TVDetails) *metadata.TitleDetail {
	seasons := make([]metadata.SeasonSummary, 0, len(tv.Seasons))
	for _, s := range tv.Seasons {
		seasons = append(seasons, metadata.SeasonSummary{
			SeasonNumber: s.SeasonNumber,
			Name:         s.Name,
			EpisodeCount: s.EpisodeCount,
			AirDate:      s.AirDate,
		})
	}
	return &metadata.TitleDetail{
		Name:          tv.Name,
		OriginalName:  tv.OriginalName,
		Overview:      tv.Overview,
		PosterPath:    tv.PosterPath,
		BackdropPath:  tv.BackdropPath,
		ReleaseDate:   tv.FirstAirDate,
		Rating:        tv.VoteAverage,
		TotalEpisodes: tv.NumberOfEpisodes,
		Seasons:       seasons,
	}
}

func movieToTitle(m *MovieDetails) *metadata.TitleDetail {
	return &metadata.TitleDetail{
		Name:          m.Title,
		OriginalName:  m.OriginalTitle,
		Overview:      m.Overview,
		PosterPath:    m.PosterPath,
		BackdropPath:  m.BackdropPath,
		ReleaseDate:   m.ReleaseDate,
		Rating:        m.VoteAverage,
		TotalEpisodes: 1,
	}
}
