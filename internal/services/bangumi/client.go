package bangumi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/killallgit/subarr/internal/models"
	"github.com/killallgit/subarr/internal/services/metadata"
)

const (
	DefaultBaseURL   = "https://api.bgm.tv"
	DefaultUserAgent = "killallgit/subarr (https://github.com/killallgit/subarr)"
	DefaultPageSize  = 100
	providerName     = "bangumi"
)

// Config holds configuration for the Bangumi client
type Config struct {
	BaseURL     string
	UserAgent   string
	AccessToken string
	Timeout     time.Duration
	RateLimit   float64
	Burst       int
	PageSize    int
}

// Client fetches anime subjects and their episode lists from Bangumi
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	accessToken string
	pageSize    int
	limiter     *rate.Limiter
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

// NewClient creates a Bangumi client
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	// Bangumi rejects requests without a descriptive User-Agent
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.PageSize <= 0 || cfg.PageSize > DefaultPageSize {
		cfg.PageSize = DefaultPageSize
	}

	c := &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:   cfg.UserAgent,
		accessToken: cfg.AccessToken,
		pageSize:    cfg.PageSize,
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
	return c
}

func (c *Client) Name() string {
	return providerName
}

// GetSubject fetches /v0/subjects/{id}
func (c *Client) GetSubject(ctx context.Context, id int64) (*Subject, error) {
	var out Subject
	if err := c.get(ctx, fmt.Sprintf("/v0/subjects/%d", id), nil, &out); err != nil {
		return nil, fmt.Errorf("bangumi subject %d: %w", id, err)
	}
	return &out, nil
}

// ListEpisodes returns every main-story episode of a subject, following pagination
func (c *Client) ListEpisodes(ctx context.Context, subjectID int64) ([]Episode, error) {
	var all []Episode
	offset := 0
	for {
		q := url.Values{}
		q.Set("subject_id", strconv.FormatInt(subjectID, 10))
		q.Set("type", strconv.Itoa(EpisodeTypeMain))
		q.Set("limit", strconv.Itoa(c.pageSize))
		q.Set("offset", strconv.Itoa(offset))

		var page EpisodePage
		if err := c.get(ctx, "/v0/episodes", q, &page); err != nil {
			return nil, fmt.Errorf("bangumi episodes for subject %d: %w", subjectID, err)
		}
		all = append(all, page.Data...)

		offset += len(page.Data)
		if len(page.Data) == 0 || offset >= page.Total {
			return all, nil
		}
	}
}

// GetTitleDetail maps a subject onto the provider-neutral shape
func (c *Client) GetTitleDetail(ctx context.Context, id int64, mediaType models.MediaType) (*metadata.TitleDetail, error) {
	if mediaType != models.MediaTypeAnime {
		return nil, fmt.Errorf("bangumi does not serve media type %q", mediaType)
	}
	s, err := c.GetSubject(ctx, id)
	if err != nil {
		return nil, err
	}

	name := s.NameCN
	if name == "" {
		name = s.Name
	}
	total := s.TotalEpisodes
	if total == 0 {
		total = s.Eps
	}
	return &metadata.TitleDetail{
		Name:          name,
		OriginalName:  s.Name,
		Overview:      s.Summary,
		PosterPath:    s.Images.Large,
		BackdropPath:  s.Images.Common,
		ReleaseDate:   s.Date,
		Rating:        s.Rating.Score,
		TotalEpisodes: total,
	}, nil
}

// GetSeasonEpisodes returns the full episode list; Bangumi subjects have no seasons
func (c *Client) GetSeasonEpisodes(ctx context.Context, id int64, _ int) ([]metadata.EpisodeDetail, error) {
	raw, err := c.ListEpisodes(ctx, id)
	if err != nil {
		return nil, err
	}
	episodes := make([]metadata.EpisodeDetail, 0, len(raw))
	for _, e := range raw {
		name := e.NameCN
		if name == "" {
			name = e.Name
		}
		episodes = append(episodes, metadata.EpisodeDetail{
			Number:   episodeNumber(e),
			Name:     name,
			AirDate:  e.Airdate,
			Overview: e.Desc,
		})
	}
	return episodes, nil
}

// episodeNumber prefers the in-subject number and falls back to the sort key.
// Fractional numbers (recaps such as 12.5) are treated as missing.
func episodeNumber(e Episode) *int {
	for _, v := range []*float64{e.Ep, e.Sort} {
		if v == nil || *v <= 0 || *v != math.Trunc(*v) {
			continue
		}
		n := int(*v)
		return &n
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

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
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Description != "" {
			return fmt.Errorf("returned %d: %s", resp.StatusCode, apiErr.Description)
		}
		return fmt.Errorf("returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
