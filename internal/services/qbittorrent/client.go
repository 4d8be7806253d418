package qbittorrent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"
)

const sessionTimeout = 15 * time.Minute

// ErrLoginFailed is returned when the WebUI rejects the configured credentials
var ErrLoginFailed = errors.New("qbittorrent login failed")

// Config holds the WebUI connection settings
type Config struct {
	URL      string
	Username string
	Password string
	Timeout  time.Duration
}

// TorrentInfo is an entry of /api/v2/torrents/info
type TorrentInfo struct {
	Hash     string  `json:"hash"`
	Name     string  `json:"name"`
	Progress float64 `json:"progress"`
	Size     int64   `json:"size"`
	State    string  `json:"state"`
	SavePath string  `json:"save_path"`
}

// Client talks to the qBittorrent WebUI API v2 with a cookie session
type Client struct {
	cfg    Config
	client *http.Client

	mu        sync.Mutex
	lastLogin time.Time
	loggedIn  bool
	now       func() time.Time
}

// NewClient creates a qBittorrent client
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("qbittorrent url required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Jar: jar, Timeout: cfg.Timeout},
		now:    time.Now,
	}, nil
}

// Login authenticates, reusing a recent session when one exists
func (c *Client) Login(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loggedIn && c.now().Sub(c.lastLogin) < sessionTimeout {
		return nil
	}

	form := url.Values{}
	form.Set("username", c.cfg.Username)
	form.Set("password", c.cfg.Password)

	req, err := c.formRequest(ctx, "/api/v2/auth/login", form)
	if err != nil {
		return err
	}
	// The WebUI enforces CSRF protection on login via Referer
	req.Header.Set("Referer", c.cfg.URL)

	resp, err := c.client.Do(req)
	if err != nil {
		c.loggedIn = false
		return fmt.Errorf("qbittorrent login: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	// A wrong password is a 200 with body "Fails."
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(body)) != "Ok." {
		c.loggedIn = false
		return fmt.Errorf("%w: status %d: %s", ErrLoginFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	c.lastLogin = c.now()
	c.loggedIn = true
	return nil
}

func (c *Client) invalidateSession() {
	c.mu.Lock()
	c.loggedIn = false
	c.mu.Unlock()
}

// DeleteTorrents removes the given torrents in one call. Empty input is a no-op.
func (c *Client) DeleteTorrents(ctx context.Context, hashes []string, deleteFiles bool) error {
	if len(hashes) == 0 {
		return nil
	}
	form := url.Values{}
	form.Set("hashes", strings.Join(hashes, "|"))
	form.Set("deleteFiles", fmt.Sprintf("%t", deleteFiles))

	resp, err := c.do(ctx, func() (*http.Request, error) {
		return c.formRequest(ctx, "/api/v2/torrents/delete", form)
	})
	if err != nil {
		return fmt.Errorf("deleting torrents: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("deleting torrents: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// ListTorrents returns every torrent known to the client
func (c *Client) ListTorrents(ctx context.Context) ([]TorrentInfo, error) {
	resp, err := c.do(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+"/api/v2/torrents/info", nil)
	})
	if err != nil {
		return nil, fmt.Errorf("listing torrents: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing torrents: status %d", resp.StatusCode)
	}
	var torrents []TorrentInfo
	if err := json.NewDecoder(resp.Body).Decode(&torrents); err != nil {
		return nil, fmt.Errorf("decoding torrents info: %w", err)
	}
	return torrents, nil
}

// Version returns the qBittorrent application version, used as a health probe
func (c *Client) Version(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+"/api/v2/app/version", nil)
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("app version: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// do logs in, sends the request and retries once with a fresh session on 403
func (c *Client) do(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	if err := c.Login(ctx); err != nil {
		return nil, err
	}
	req, err := build()
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusForbidden {
		return resp, nil
	}
	resp.Body.Close()

	c.invalidateSession()
	if err := c.Login(ctx); err != nil {
		return nil, fmt.Errorf("re-login after 403: %w", err)
	}
	req, err = build()
	if err != nil {
		return nil, err
	}
	return c.client.Do(req)
}

func (c *Client) formRequest(ctx context.Context, path string, form url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}
