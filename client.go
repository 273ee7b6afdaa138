package metigan

import (
	"fmt"

	"github.com/metigan/metigan-go/internal/api"
	"github.com/metigan/metigan-go/internal/apierrors"
)

// Client is the Metigan API client. It is safe for concurrent use; all of
// its state is fixed when New returns.
type Client struct {
	apiClient *api.Client
}

// New creates a new Metigan client with the given API key.
// It fails with a ConfigurationError when the key is empty or an option
// value is invalid.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, apierrors.Configuration(ErrMissingAPIKey)
	}

	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, apierrors.Configuration(err)
	}

	apiClient, err := api.NewClient(api.Config{
		BaseURL:    cfg.baseURL,
		APIKey:     apiKey,
		HTTPClient: cfg.httpClient,
		Timeout:    cfg.timeout,
		RetryCount: cfg.retryCount,
		RetryDelay: cfg.retryDelay,
		Debug:      cfg.debug,
		Logger:     cfg.logger,
		RateLimit:  cfg.rateLimit,
		RateBurst:  cfg.rateBurst,
		UserAgent:  cfg.userAgent,
	})
	if err != nil {
		return nil, err
	}

	return &Client{apiClient: apiClient}, nil
}

func (c *clientConfig) validate() error {
	if c.timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.timeout)
	}
	if c.retryCount < 0 {
		return fmt.Errorf("retry count must be zero or positive, got %d", c.retryCount)
	}
	if c.retryDelay < 0 {
		return fmt.Errorf("retry delay must be zero or positive, got %v", c.retryDelay)
	}
	if c.rateLimit < 0 {
		return fmt.Errorf("rate limit must be zero or positive, got %v", c.rateLimit)
	}
	return nil
}

// Email returns the email sending operations.
func (c *Client) Email() Email {
	return &emailImpl{client: c}
}

// Contacts returns the contact management operations.
func (c *Client) Contacts() Contacts {
	return &contactsImpl{client: c}
}

// Audiences returns the audience management operations.
func (c *Client) Audiences() Audiences {
	return &audiencesImpl{client: c}
}

// Templates returns the read-only template operations.
func (c *Client) Templates() Templates {
	return &templatesImpl{client: c}
}

// Forms returns the form operations.
func (c *Client) Forms() Forms {
	return &formsImpl{client: c}
}
