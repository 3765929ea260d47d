// Package telegram provides a minimal client for the Telegram Bot API.
//
// Only the calls the Boomerverse services need are implemented: sending a
// text message, registering a webhook and reading webhook status. Inbound
// webhook payloads decode into [Update].
package telegram

import (
	"fmt"
	"net/http"
	"strings"
)

// Config holds client configuration.
type Config struct {
	Token      string       // Required: bot token from @BotFather
	HTTPClient *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL    string       // Optional: API base URL (used for testing)
}

// Client calls the Bot API on behalf of one bot.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
}

// DefaultBaseURL is the public Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// NewClient creates a new Bot API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram: token is required")
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
		token:      cfg.Token,
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}, nil
}

func (c *Client) methodURL(method string) string {
	return c.baseURL + "/bot" + c.token + "/" + method
}
