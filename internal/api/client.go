package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rickgao/autosell/internal/auth"
)

// Client provides access to the Bittrex REST API.
type Client struct {
	publicURL  string
	privateURL string
	creds      *auth.Credentials
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time

	maxRetries   int
	retryBackoff time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new REST API client. creds may be nil when only public
// endpoints are used.
func NewClient(publicURL, privateURL string, creds *auth.Credentials, opts ...ClientOption) *Client {
	c := &Client{
		publicURL:  strings.TrimRight(publicURL, "/"),
		privateURL: strings.TrimRight(privateURL, "/"),
		creds:      creds,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:       slog.Default(),
		now:          time.Now,
		maxRetries:   3,
		retryBackoff: time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the per-call HTTP timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the retry configuration for idempotent requests.
// Negative values are treated as zero.
func WithRetries(maxRetries int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max(0, maxRetries)
		c.retryBackoff = max(0, backoff)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithClock overrides the time source used for request timestamps.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}
