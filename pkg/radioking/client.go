// Package radioking provides a client for the public RadioKing widget API
// and the station's M3U stream manifest.
package radioking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Config holds client configuration.
type Config struct {
	Slug       string       // Required: station slug, e.g. "boomerfm-web3"
	HTTPClient *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL    string       // Optional: widget API base URL (used for testing)
}

// Client reads track information for one station.
type Client struct {
	slug       string
	httpClient *http.Client
	baseURL    string
}

// DefaultBaseURL is the public widget API endpoint.
const DefaultBaseURL = "https://api.radioking.io"

var (
	// ErrNoTrack is returned when the API answers but reports no track.
	ErrNoTrack = errors.New("radioking: no track")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("radioking: unexpected status %d from %s", e.StatusCode, e.URL)
}

// NewClient creates a new widget API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Slug == "" {
		return nil, fmt.Errorf("radioking: station slug is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		slug:       cfg.Slug,
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}, nil
}

// trackURL builds a widget track endpoint, with an optional limit.
func (c *Client) trackURL(endpoint string, limit int) string {
	u := c.baseURL + "/widget/radio/" + url.PathEscape(c.slug) + "/track/" + endpoint
	if limit > 0 {
		u += "?limit=" + strconv.Itoa(limit)
	}
	return u
}

func (c *Client) getJSON(ctx context.Context, u string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, URL: u}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
