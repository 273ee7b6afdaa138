package metigan

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/metigan/metigan-go/internal/api"
)

// HTTPDoer executes HTTP requests. *http.Client satisfies it.
type HTTPDoer = api.HTTPDoer

const (
	defaultBaseURL    = api.DefaultBaseURL
	defaultTimeout    = api.DefaultTimeout
	defaultRetryCount = api.DefaultRetryCount
	defaultRetryDelay = api.DefaultRetryDelay
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL    string
	httpClient HTTPDoer
	timeout    time.Duration
	retryCount int
	retryDelay time.Duration
	debug      bool
	logger     logrus.FieldLogger
	userAgent  string

	// Client-side rate limiting
	rateLimit float64
	rateBurst int
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		baseURL:    defaultBaseURL,
		timeout:    defaultTimeout,
		retryCount: defaultRetryCount,
		retryDelay: defaultRetryDelay,
		userAgent:  api.DefaultUserAgent,
	}
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the API base URL.
// Default: https://api.metigan.com
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the timeout applied to each attempt. It must be positive.
// Default: 30 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetryCount sets how many times a transiently failing call is retried.
// Zero disables retries.
// Default: 3
func WithRetryCount(count int) Option {
	return func(c *clientConfig) {
		c.retryCount = count
	}
}

// WithRetryDelay sets the constant wait between attempts.
// Default: 2 seconds
func WithRetryDelay(delay time.Duration) Option {
	return func(c *clientConfig) {
		c.retryDelay = delay
	}
}

// WithDebug writes request diagnostics to stderr when no logger is set.
func WithDebug(debug bool) Option {
	return func(c *clientConfig) {
		c.debug = debug
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithRateLimit limits outgoing requests to perSecond with the given burst.
// Zero disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *clientConfig) {
		c.rateLimit = perSecond
		c.rateBurst = burst
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *clientConfig) {
		c.userAgent = userAgent
	}
}
