package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/metigan/metigan-go/internal/apierrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Default configuration values.
const (
	DefaultBaseURL    = "https://api.metigan.com"
	DefaultTimeout    = 30 * time.Second
	DefaultRetryCount = 3
	DefaultRetryDelay = 2 * time.Second
	DefaultUserAgent  = "metigan-go/1.0"
)

// Header names set on every request.
const (
	APIKeyHeader    = "x-api-key"
	RequestIDHeader = "X-Request-ID"
)

// maxErrorBody caps how much of an error response body is kept on an error.
const maxErrorBody = 64 << 10

// HTTPDoer is the interface for executing HTTP requests.
// *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the settings for a Client.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient HTTPDoer
	// Timeout bounds each attempt. Zero means DefaultTimeout.
	Timeout    time.Duration
	RetryCount int
	RetryDelay time.Duration
	// RetryPolicy overrides RetryCount and RetryDelay when set.
	RetryPolicy *RetryPolicy
	Debug       bool
	Logger      logrus.FieldLogger
	// RateLimit is the client-side request rate in requests per second.
	// Zero disables limiting.
	RateLimit float64
	RateBurst int
	UserAgent string
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		Timeout:    DefaultTimeout,
		RetryCount: DefaultRetryCount,
		RetryDelay: DefaultRetryDelay,
		UserAgent:  DefaultUserAgent,
	}
}

// Request describes one logical API call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any // marshalled to JSON once; a []byte is sent as-is
	Headers map[string]string
}

// Client is the HTTP transport shared by every resource.
// All fields are set by NewClient and never modified afterwards.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPDoer
	timeout    time.Duration
	retry      *RetryPolicy
	limiter    *rate.Limiter
	logger     logrus.FieldLogger
	userAgent  string
}

// NewClient validates cfg and creates a Client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apierrors.Configuration(apierrors.ErrMissingAPIKey)
	}
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, apierrors.Configuration(err)
	}
	if cfg.Timeout < 0 {
		return nil, apierrors.Configuration(fmt.Errorf("timeout must not be negative, got %v", cfg.Timeout))
	}
	if cfg.RetryCount < 0 {
		return nil, apierrors.Configuration(fmt.Errorf("retry count must be zero or positive, got %d", cfg.RetryCount))
	}
	if cfg.RetryDelay < 0 {
		return nil, apierrors.Configuration(fmt.Errorf("retry delay must be zero or positive, got %v", cfg.RetryDelay))
	}
	if cfg.RateLimit < 0 {
		return nil, apierrors.Configuration(fmt.Errorf("rate limit must be zero or positive, got %v", cfg.RateLimit))
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: cfg.HTTPClient,
		timeout:    timeout,
		retry:      cfg.RetryPolicy,
		logger:     cfg.Logger,
		userAgent:  cfg.UserAgent,
	}
	if c.retry == nil {
		c.retry = NewRetryPolicy(cfg.RetryCount, cfg.RetryDelay)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: timeout}
	}
	if c.logger == nil {
		c.logger = newLogger(cfg.Debug)
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return c, nil
}

// Do executes r, retrying transient failures, and decodes a success body into out.
// out may be nil when the response body is not needed.
func (c *Client) Do(ctx context.Context, r *Request, out any) error {
	body, err := encodeBody(r.Body)
	if err != nil {
		return apierrors.Validation("encode request body: %v", err)
	}

	requestID := uuid.NewString()
	logger := c.logger.WithFields(logrus.Fields{
		"method":     r.Method,
		"path":       r.Path,
		"request_id": requestID,
	})

	bo := c.retry.newBackOff()
	for attempt := 1; ; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return rateLimitFailure(ctx, err, requestID, attempt)
			}
		}

		status, raw, failure := c.attempt(ctx, r, body, requestID, attempt, logger)
		if failure == nil && status >= 200 && status < 300 {
			if err := decodeSuccess(status, raw, out); err != nil {
				err.RequestID = requestID
				err.Attempts = attempt
				return err
			}
			return nil
		}

		retryable := false
		if failure != nil {
			retryable = failure.Kind == apierrors.KindNetwork || failure.Kind == apierrors.KindTimeout
			if ctx.Err() != nil {
				retryable = false
			}
		} else {
			failure = apiErrorFromResponse(status, raw)
			retryable = c.retry.ShouldRetry(status)
		}
		failure.RequestID = requestID
		failure.Attempts = attempt

		if !retryable {
			return failure
		}

		next := bo.NextBackOff()
		if next == backoff.Stop {
			if attempt == 1 {
				// Retries are disabled; report the failure as is.
				return failure
			}
			logger.WithField("attempts", attempt).Debug("retries exhausted")
			return exhausted(failure, attempt)
		}

		logger.WithFields(logrus.Fields{
			"attempt": attempt,
			"status":  failure.StatusCode,
			"kind":    failure.Kind,
			"wait":    next,
		}).Debug("transient failure, retrying")

		if err := c.retry.Wait(ctx, next); err != nil {
			return contextFailure(ctx, err, requestID, attempt)
		}
	}
}

// attempt performs a single HTTP exchange. It returns either the status and
// body of a response, or a transport-level failure.
func (c *Client) attempt(ctx context.Context, r *Request, body []byte, requestID string, attempt int, logger logrus.FieldLogger) (int, []byte, *apierrors.Error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newHTTPRequest(attemptCtx, r, body, requestID)
	if err != nil {
		return 0, nil, &apierrors.Error{Kind: apierrors.KindValidation, Message: fmt.Sprintf("create request: %v", err), Err: err}
	}

	start := time.Now()
	logger.WithField("attempt", attempt).Debug("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		failure := classifyTransportError(ctx, attemptCtx, err, c.timeout)
		logger.WithFields(logrus.Fields{
			"attempt":  attempt,
			"kind":     failure.Kind,
			"duration": time.Since(start),
		}).Debug("request failed")
		return 0, nil, failure
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, classifyTransportError(ctx, attemptCtx, err, c.timeout)
	}

	logger.WithFields(logrus.Fields{
		"attempt":  attempt,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("received response")

	return resp.StatusCode, raw, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, r *Request, body []byte, requestID string) (*http.Request, error) {
	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, bodyReader)
	if err != nil {
		return nil, err
	}

	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	default:
		return json.Marshal(b)
	}
}

// decodeSuccess decodes a 2xx body into out.
func decodeSuccess(status int, raw []byte, out any) *apierrors.Error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		if out == nil || status == http.StatusNoContent {
			return nil
		}
		return &apierrors.Error{Kind: apierrors.KindMalformedResponse, Message: "empty response body", StatusCode: status}
	}

	if !json.Valid(trimmed) {
		return &apierrors.Error{Kind: apierrors.KindMalformedResponse, Message: "response body is not valid JSON", StatusCode: status, RawBody: raw}
	}

	// A success status with an explicit false flag is still a failure.
	if flag := json.Get(trimmed, "success"); flag.ValueType() == jsoniter.BoolValue && !flag.ToBool() {
		msg := extractMessage(trimmed)
		if msg == "" {
			msg = "request was not successful"
		}
		return &apierrors.Error{Kind: apierrors.KindAPI, Message: msg, StatusCode: status, RawBody: raw}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return &apierrors.Error{
			Kind:       apierrors.KindMalformedResponse,
			Message:    fmt.Sprintf("decode response: %v", err),
			StatusCode: status,
			RawBody:    raw,
			Err:        err,
		}
	}
	return nil
}

func apiErrorFromResponse(status int, raw []byte) *apierrors.Error {
	msg := ""
	if json.Valid(raw) {
		msg = extractMessage(raw)
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = fmt.Sprintf("unexpected status %d", status)
	}
	if len(raw) > maxErrorBody {
		raw = raw[:maxErrorBody]
	}
	return &apierrors.Error{Kind: apierrors.KindAPI, Message: msg, StatusCode: status, RawBody: raw}
}

// extractMessage returns the "error" or "message" string field of a JSON object.
func extractMessage(raw []byte) string {
	for _, key := range []string{"error", "message"} {
		if v := json.Get(raw, key); v.ValueType() == jsoniter.StringValue {
			if s := strings.TrimSpace(v.ToString()); s != "" {
				return s
			}
		}
	}
	return ""
}

func exhausted(last *apierrors.Error, attempts int) *apierrors.Error {
	return &apierrors.Error{
		Kind:       apierrors.KindExhaustedRetries,
		Message:    fmt.Sprintf("giving up after %d attempts: %s", attempts, last.Message),
		StatusCode: last.StatusCode,
		RawBody:    last.RawBody,
		RequestID:  last.RequestID,
		Attempts:   attempts,
		Err:        last,
	}
}

// classifyTransportError maps an error from the HTTP layer to a failure kind.
func classifyTransportError(parent, attemptCtx context.Context, err error, timeout time.Duration) *apierrors.Error {
	if parent.Err() != nil {
		return contextFailure(parent, parent.Err(), "", 0)
	}

	var netErr net.Error
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) ||
		errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return &apierrors.Error{
			Kind:    apierrors.KindTimeout,
			Message: fmt.Sprintf("request exceeded timeout of %v", timeout),
			Err:     err,
		}
	}

	return &apierrors.Error{Kind: apierrors.KindNetwork, Message: err.Error(), Err: err}
}

// contextFailure reports a call whose own context ended.
func contextFailure(ctx context.Context, err error, requestID string, attempt int) *apierrors.Error {
	kind := apierrors.KindNetwork
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		kind = apierrors.KindTimeout
	}
	return &apierrors.Error{Kind: kind, Message: err.Error(), RequestID: requestID, Attempts: attempt, Err: err}
}

// rateLimitFailure reports a limiter wait that could not complete. The limiter
// refuses early when the wait would outlast the context deadline.
func rateLimitFailure(ctx context.Context, err error, requestID string, attempt int) *apierrors.Error {
	if ctx.Err() == nil {
		return &apierrors.Error{
			Kind:      apierrors.KindTimeout,
			Message:   fmt.Sprintf("rate limit wait exceeds deadline: %v", err),
			RequestID: requestID,
			Attempts:  attempt,
			Err:       err,
		}
	}
	return contextFailure(ctx, ctx.Err(), requestID, attempt)
}

func normalizeBaseURL(raw string) (string, error) {
	if raw == "" {
		raw = DefaultBaseURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("base URL must use http or https, got %q", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("base URL has no host: %q", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}
