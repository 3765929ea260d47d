package cloudinary

import (
	"net/http"
	"strings"
)

// Config holds client configuration.
type Config struct {
	CloudName   string       // Required: Cloudinary cloud name
	APIKey      string       // Required: Admin API key
	APISecret   string       // Required: Admin API secret
	HTTPClient  *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL     string       // Optional: Admin API base URL (used for testing)
	DeliveryURL string       // Optional: delivery base URL (used for testing)
	Logger      Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Cloudinary API operations.
type Client struct {
	cloudName   string
	apiKey      string
	apiSecret   string
	httpClient  *http.Client
	baseURL     string
	deliveryURL string
	logger      Logger

	search *SearchService
}

const (
	// DefaultBaseURL is the default Admin API endpoint.
	DefaultBaseURL = "https://api.cloudinary.com/v1_1"

	// DefaultDeliveryURL is the default public delivery endpoint.
	DefaultDeliveryURL = "https://res.cloudinary.com"

	// DefaultFormat is used for delivery URLs when an asset has no format.
	DefaultFormat = "jpg"
)

// NewClient creates a new Cloudinary API client.
//
// Returns ErrMissingCredentials if the cloud name, API key or API secret
// is empty.
func NewClient(cfg Config) (*Client, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, ErrMissingCredentials
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	deliveryURL := cfg.DeliveryURL
	if deliveryURL == "" {
		deliveryURL = DefaultDeliveryURL
	}

	c := &Client{
		cloudName:   cfg.CloudName,
		apiKey:      cfg.APIKey,
		apiSecret:   cfg.APISecret,
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		deliveryURL: strings.TrimRight(deliveryURL, "/"),
		logger:      cfg.Logger,
	}

	c.search = &SearchService{client: c}

	return c, nil
}

// Search returns the asset search service.
func (c *Client) Search() *SearchService {
	return c.search
}

// CloudName returns the configured cloud name.
func (c *Client) CloudName() string {
	return c.cloudName
}

// DirectLink returns the public delivery URL of an uploaded image.
// An empty format falls back to DefaultFormat.
func (c *Client) DirectLink(publicID, format string) string {
	if format == "" {
		format = DefaultFormat
	}
	return c.deliveryURL + "/" + c.cloudName + "/image/upload/" + publicID + "." + format
}

func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
