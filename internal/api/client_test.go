package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tilinna/clock"

	"github.com/metigan/metigan-go/internal/apierrors"
	"github.com/metigan/metigan-go/internal/fixtures"
)

const testAPIKey = "sp_test_0123456789abcdef"

func newTestClient(t *testing.T, cfg Config) *Client {
	t.Helper()
	if cfg.APIKey == "" {
		cfg.APIKey = testAPIKey
	}
	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

func requireKind(t *testing.T, err error, kind apierrors.Kind) *apierrors.Error {
	t.Helper()
	var apiErr *apierrors.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, kind, apiErr.Kind, "error: %v", err)
	return apiErr
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "https://example.com"})
	requireKind(t, err, apierrors.KindConfiguration)
	assert.ErrorIs(t, err, apierrors.ErrMissingAPIKey)
}

func TestNewClient_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"relative base URL", Config{APIKey: "k", BaseURL: "/api"}},
		{"unsupported scheme", Config{APIKey: "k", BaseURL: "ftp://example.com"}},
		{"unparsable base URL", Config{APIKey: "k", BaseURL: "http://[::1"}},
		{"negative timeout", Config{APIKey: "k", Timeout: -time.Second}},
		{"negative retry count", Config{APIKey: "k", RetryCount: -1}},
		{"negative retry delay", Config{APIKey: "k", RetryDelay: -time.Second}},
		{"negative rate limit", Config{APIKey: "k", RateLimit: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg)
			requireKind(t, err, apierrors.KindConfiguration)
		})
	}
}

func TestNewClient_DefaultValues(t *testing.T) {
	client := newTestClient(t, Config{})

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultTimeout, client.timeout)
	assert.Equal(t, DefaultUserAgent, client.userAgent)
	assert.Nil(t, client.limiter)

	httpClient, ok := client.httpClient.(*http.Client)
	require.True(t, ok)
	assert.Equal(t, DefaultTimeout, httpClient.Timeout)
}

func TestNewClient_ZeroTimeoutUsesDefault(t *testing.T) {
	client := newTestClient(t, Config{Timeout: 0})
	assert.Equal(t, DefaultTimeout, client.timeout)

	_, err := NewClient(Config{APIKey: "k", Timeout: -time.Nanosecond})
	requireKind(t, err, apierrors.KindConfiguration)
}

func TestNewClient_RetryPolicyOverridesCountAndDelay(t *testing.T) {
	policy := NewRetryPolicy(1, time.Minute)
	client := newTestClient(t, Config{RetryCount: 7, RetryDelay: time.Second, RetryPolicy: policy})
	assert.Same(t, policy, client.retry)

	client = newTestClient(t, Config{RetryCount: 7, RetryDelay: time.Second})
	assert.Equal(t, 7, client.retry.MaxRetries)
	assert.Equal(t, time.Second, client.retry.Delay)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client := newTestClient(t, Config{BaseURL: "https://example.com/"})
	assert.Equal(t, "https://example.com", client.baseURL)
}

func TestClient_Do_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testAPIKey, r.Header.Get(APIKeyHeader))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		assert.Equal(t, "/api/things", r.URL.Path)
		assert.Equal(t, "a=1&b=2", r.URL.RawQuery)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name":"test"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"received":"test"}`)
	}))
	defer server.Close()

	client := newTestClient(t, Config{BaseURL: server.URL})

	var result struct {
		Received string `json:"received"`
	}
	err := client.Do(context.Background(), &Request{
		Method: http.MethodPost,
		Path:   "/api/things",
		Query:  map[string][]string{"b": {"2"}, "a": {"1"}},
		Body:   map[string]string{"name": "test"},
	}, &result)
	require.NoError(t, err)
	assert.Equal(t, "test", result.Received)
}

func TestClient_Do_CredentialOnlyInHeader(t *testing.T) {
	doer := &fixtures.Doer{}
	client := newTestClient(t, Config{BaseURL: "https://example.com", HTTPClient: doer})

	custom := map[string]string{APIKeyHeader: "override-attempt", "Authorization": "Bearer nope"}
	err := client.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/api/x", Headers: custom}, nil)
	require.NoError(t, err)

	req := doer.Request(0)
	assert.Equal(t, []string{testAPIKey}, req.Header.Values(APIKeyHeader))
	for name, values := range req.Header {
		if http.CanonicalHeaderKey(name) == http.CanonicalHeaderKey(APIKeyHeader) {
			continue
		}
		for _, v := range values {
			assert.NotContains(t, v, testAPIKey, "header %s", name)
		}
	}
	assert.NotContains(t, req.URL.String(), testAPIKey)
}

func TestClient_Do_NoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, Config{BaseURL: server.URL})
	var out Envelope
	require.NoError(t, client.Do(context.Background(), &Request{Method: http.MethodDelete, Path: "/x"}, &out))
	require.NoError(t, client.Do(context.Background(), &Request{Method: http.MethodDelete, Path: "/x"}, nil))
}

func TestClient_Do_Retry(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count := atomic.AddInt32(&attempts, 1)
		if count < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true}`)
	}))
	defer server.Close()

	client := newTestClient(t, Config{BaseURL: server.URL, RetryCount: 3, RetryDelay: time.Millisecond})

	require.NoError(t, client.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/test"}, nil))
	assert.EqualValues(t, 3, atomic.LoadInt32(&attempts))
}

func TestClient_Do_ServerErrorExhaustsRetries(t *testing.T) {
	const (
		retryCount = 3
		retryDelay = 2 * time.Second
	)

	ctx, _, stop := fixtures.NewAdvancingClock(context.Background())
	defer stop()

	var (
		mu    sync.Mutex
		times []time.Time
	)
	doer := &fixtures.Doer{Handler: func(req *http.Request, call int) (*http.Response, error) {
		mu.Lock()
		times = append(times, clock.Now(req.Context()))
		mu.Unlock()
		return fixtures.JSONResponse(http.StatusInternalServerError, `{"error":"boom"}`), nil
	}}
	client := newTestClient(t, Config{
		BaseURL:    "https://example.com",
		HTTPClient: doer,
		RetryCount: retryCount,
		RetryDelay: retryDelay,
	})

	err := client.Do(ctx, &Request{Method: http.MethodPost, Path: "/api/email/send", Body: map[string]int{"n": 1}}, nil)

	apiErr := requireKind(t, err, apierrors.KindExhaustedRetries)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "boom")
	assert.JSONEq(t, `{"error":"boom"}`, string(apiErr.RawBody))
	assert.Equal(t, retryCount+1, apiErr.Attempts)
	assert.ErrorIs(t, err, apierrors.ErrExhaustedRetries)

	require.Equal(t, retryCount+1, doer.Calls())
	require.Len(t, times, retryCount+1)
	for i := 1; i < len(times); i++ {
		assert.Equal(t, retryDelay, times[i].Sub(times[i-1]), "gap before attempt %d", i+1)
	}

	first := doer.Request(0).Header.Get(RequestIDHeader)
	for i := 0; i < doer.Calls(); i++ {
		assert.Equal(t, first, doer.Request(i).Header.Get(RequestIDHeader), "request id is stable across retries")
		assert.Equal(t, doer.Body(0), doer.Body(i), "retries re-send identical bytes")
	}
}

func TestClient_Do_NoRetryOn4xx(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"bad request"}`)
	}))
	defer server.Close()

	client := newTestClient(t, Config{BaseURL: server.URL, RetryCount: 3, RetryDelay: time.Millisecond})

	err := client.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/test"}, nil)
	apiErr := requireKind(t, err, apierrors.KindAPI)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "bad request", apiErr.Message)
	assert.Equal(t, 1, apiErr.Attempts)
	assert.EqualValues(t, 1, atomic.LoadInt32(&attempts), "no retry on 4xx")
}

func TestClient_Do_RetriesRateLimited(t *testing.T) {
	doer := &fixtures.Doer{Handler: func(req *http.Request, call int) (*http.Response, error) {
		if call == 1 {
			return fixtures.JSONResponse(http.StatusTooManyRequests, `{"message":"slow down"}`), nil
		}
		return fixtures.JSONResponse(http.StatusOK, `{"success":true}`), nil
	}}
	client := newTestClient(t, Config{BaseURL: "https://example.com", HTTPClient: doer, RetryCount: 1})

	ctx, _, stop := fixtures.NewAdvancingClock(context.Background())
	defer stop()

	require.NoError(t, client.Do(ctx, &Request{Method: http.MethodGet, Path: "/x"}, nil))
	assert.Equal(t, 2, doer.Calls())
}

func TestClient_Do_RateLimitedExhausted(t *testing.T) {
	doer := &fixtures.Doer{Handler: func(req *http.Request, call int) (*http.Response, error) {
		return fixtures.JSONResponse(http.StatusTooManyRequests, `{"message":"slow down"}`), nil
	}}
	client := newTestClient(t, Config{BaseURL: "https://example.com", HTTPClient: doer, RetryCount: 2})

	ctx, _, stop := fixtures.NewAdvancingClock(context.Background())
	defer stop()

	err := client.Do(ctx, &Request{Method: http.MethodGet, Path: "/x"}, nil)
	requireKind(t, err, apierrors.KindExhaustedRetries)
	assert.ErrorIs(t, err, apierrors.ErrRateLimited)
	assert.Equal(t, 3, doer.Calls())
}

func TestClient_Do_ErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"error field", 400, `{"error":"invalid from"}`, "invalid from"},
		{"message field", 422, `{"success":false,"message":"quota exceeded"}`, "quota exceeded"},
		{"error preferred over message", 400, `{"error":"e","message":"m"}`, "e"},
		{"non-string error falls back to message", 400, `{"error":{"code":1},"message":"m"}`, "m"},
		{"no fields", 404, `{}`, "Not Found"},
		{"not json", 403, `<html>forbidden</html>`, "Forbidden"},
		{"empty body", 401, ``, "Unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &fixtures.Doer{Handler: func(req *http.Request, call int) (*http.Response, error) {
				return fixtures.JSONResponse(tt.status, tt.body), nil
			}}
			client := newTestClient(t, Config{BaseURL: "https://example.com", HTTPClient: doer})

			err := client.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/x"}, nil)
			apiErr := requireKind(t, err, apierrors.KindAPI)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.expected, apiErr.Message)
			assert.Equal(t, tt.body, string(apiErr.RawBody))
		})
	}
}

func TestClient_Do_MalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"success": tru`},
		{"wrong shape", `{"success":true,"contact":"not-an-object"}`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &fixtures.Doer{Handler: func(req *http.Request, call int) (*http.Response, error) {
				return fixtures.JSONResponse(http.StatusOK, tt.body), nil
			}}
			client := newTestClient(t, Config{BaseURL: "https://example.com", HTTPClient: doer, RetryCount: 3})

			var out ContactResponse
			err := client.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/x"}, &out)
			apiErr := requireKind(t, err, apierrors.KindMalformedResponse)
			assert.Equal(t, http.StatusOK, apiErr.StatusCode)
			assert.Equal(t, 1, doer.Calls(), "malformed responses are not retried")
		})
	}
}

func TestClient_Do_SuccessFalseEnvelope(t *testing.T) {
	doer := &fixtures.Doer{Handler: func(req *http.Request, call int) (*http.Response, error) {
		return fixtures.JSONResponse(http.StatusOK, `{"success":false,"message":"sender domain not verified"}`), nil
	}}
	client := newTestClient(t, Config{BaseURL: "https://example.com", HTTPClient: doer})

	var out SendEmailResponse
	err := client.Do(context.Background(), &Request{Method: http.MethodPost, Path: "/api/email/send", Body: struct{}{}}, &out)
	apiErr := requireKind(t, err, apierrors.KindAPI)
	assert.Equal(t, "sender domain not verified", apiErr.Message)
	assert.Equal(t, http.StatusOK, apiErr.StatusCode)
}

func TestClient_Do_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := newTestClient(t, Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond, RetryCount: 0})

	err := client.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/slow"}, nil)
	requireKind(t, err, apierrors.KindTimeout)
	assert.ErrorIs(t, err, apierrors.ErrTimeout)
}

func TestClient_Do_TimeoutRetriedThenExhausted(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := newTestClient(t, Config{BaseURL: server.URL, Timeout: 30 * time.Millisecond, RetryCount: 2, RetryDelay: time.Millisecond})

	err := client.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/slow"}, nil)
	apiErr := requireKind(t, err, apierrors.KindExhaustedRetries)
	assert.Equal(t, 3, apiErr.Attempts)
	assert.ErrorIs(t, err, apierrors.ErrTimeout, "last failure is wrapped")
	assert.EqualValues(t, 3, atomic.LoadInt32(&attempts))
}

func TestClient_Do_NetworkError(t *testing.T) {
	dialErr := errors.New("dial tcp: connection refused")
	doer := &fixtures.Doer{Handler: func(req *http.Request, call int) (*http.Response, error) {
		return nil, dialErr
	}}
	client := newTestClient(t, Config{BaseURL: "https://example.com", HTTPClient: doer, RetryCount: 2})

	ctx, _, stop := fixtures.NewAdvancingClock(context.Background())
	defer stop()

	err := client.Do(ctx, &Request{Method: http.MethodGet, Path: "/x"}, nil)
	requireKind(t, err, apierrors.KindExhaustedRetries)
	assert.ErrorIs(t, err, apierrors.ErrNetwork)
	assert.ErrorIs(t, err, dialErr)
	assert.Equal(t, 3, doer.Calls())
}

func TestClient_Do_NetworkErrorWithoutRetries(t *testing.T) {
	doer := &fixtures.Doer{Handler: func(req *http.Request, call int) (*http.Response, error) {
		return nil, errors.New("connection reset by peer")
	}}
	client := newTestClient(t, Config{BaseURL: "https://example.com", HTTPClient: doer, RetryCount: 0})

	err := client.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/x"}, nil)
	apiErr := requireKind(t, err, apierrors.KindNetwork)
	assert.Equal(t, 1, apiErr.Attempts)
	assert.Equal(t, 1, doer.Calls())
}

func TestClient_Do_ServerErrorWithoutRetries(t *testing.T) {
	doer := &fixtures.Doer{Handler: func(req *http.Request, call int) (*http.Response, error) {
		return fixtures.JSONResponse(http.StatusInternalServerError, `{"error":"boom"}`), nil
	}}
	client := newTestClient(t, Config{BaseURL: "https://example.com", HTTPClient: doer, RetryCount: 0})

	err := client.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/x"}, nil)
	apiErr := requireKind(t, err, apierrors.KindAPI)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, 1, doer.Calls())
}

func TestClient_Do_ZeroRetryCountStopsAfterOneAttempt(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"server error", http.StatusInternalServerError},
		{"rate limited", http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &fixtures.Doer{Handler: func(req *http.Request, call int) (*http.Response, error) {
				return fixtures.JSONResponse(tt.status, `{"error":"unavailable"}`), nil
			}}
			client := newTestClient(t, Config{BaseURL: "https://example.com", HTTPClient: doer, RetryCount: 0, RetryDelay: 0})

			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()

			err := client.Do(ctx, &Request{Method: http.MethodGet, Path: "/x"}, nil)
			apiErr := requireKind(t, err, apierrors.KindAPI)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, 1, doer.Calls())
		})
	}
}

func TestClient_Do_ContextCanceledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	doer := &fixtures.Doer{Handler: func(req *http.Request, call int) (*http.Response, error) {
		cancel()
		return fixtures.JSONResponse(http.StatusBadGateway, `{}`), nil
	}}
	client := newTestClient(t, Config{BaseURL: "https://example.com", HTTPClient: doer, RetryCount: 3, RetryDelay: time.Hour})

	err := client.Do(ctx, &Request{Method: http.MethodGet, Path: "/x"}, nil)
	requireKind(t, err, apierrors.KindNetwork)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, doer.Calls())
}

func TestClient_Do_CustomRetryPolicy(t *testing.T) {
	doer := &fixtures.Doer{Handler: func(req *http.Request, call int) (*http.Response, error) {
		return fixtures.JSONResponse(http.StatusConflict, `{"error":"busy"}`), nil
	}}
	client := newTestClient(t, Config{
		BaseURL:    "https://example.com",
		HTTPClient: doer,
		RetryCount: 5,
		RetryPolicy: &RetryPolicy{
			MaxRetries:  1,
			RetryableOn: func(code int) bool { return code == http.StatusConflict },
		},
	})

	err := client.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/x"}, nil)
	requireKind(t, err, apierrors.KindExhaustedRetries)
	assert.Equal(t, 2, doer.Calls())
}

func TestClient_Do_RateLimiter(t *testing.T) {
	doer := &fixtures.Doer{}
	client := newTestClient(t, Config{BaseURL: "https://example.com", HTTPClient: doer, RateLimit: 0.001, RateBurst: 1})
	require.NotNil(t, client.limiter)

	require.NoError(t, client.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/x"}, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := client.Do(ctx, &Request{Method: http.MethodGet, Path: "/x"}, nil)
	requireKind(t, err, apierrors.KindTimeout)
	assert.Equal(t, 1, doer.Calls(), "second call never reaches the network")
}

func TestClient_Do_DebugLogsNeverContainCredential(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	doer := &fixtures.Doer{Handler: func(req *http.Request, call int) (*http.Response, error) {
		if call == 1 {
			return fixtures.JSONResponse(http.StatusServiceUnavailable, `{"error":"down"}`), nil
		}
		return fixtures.JSONResponse(http.StatusOK, `{"success":true}`), nil
	}}
	client := newTestClient(t, Config{
		BaseURL:    "https://example.com",
		HTTPClient: doer,
		Debug:      true,
		Logger:     logger,
		RetryCount: 1,
	})

	ctx, _, stop := fixtures.NewAdvancingClock(context.Background())
	defer stop()

	body := map[string]string{"content": "c2VjcmV0LWF0dGFjaG1lbnQ="}
	require.NoError(t, client.Do(ctx, &Request{Method: http.MethodPost, Path: "/api/email/send", Body: body}, nil))

	entries := hook.AllEntries()
	require.NotEmpty(t, entries)

	sawRetry := false
	for _, entry := range entries {
		line, err := entry.String()
		require.NoError(t, err)
		assert.NotContains(t, line, testAPIKey)
		assert.NotContains(t, line, "c2VjcmV0LWF0dGFjaG1lbnQ=")
		assert.Equal(t, http.MethodPost, entry.Data["method"])
		assert.Equal(t, "/api/email/send", entry.Data["path"])
		if strings.Contains(entry.Message, "retrying") {
			sawRetry = true
			assert.Equal(t, 1, entry.Data["attempt"])
		}
	}
	assert.True(t, sawRetry)
}

func TestClient_Do_ErrorsNeverContainCredential(t *testing.T) {
	doer := &fixtures.Doer{Handler: func(req *http.Request, call int) (*http.Response, error) {
		return nil, fmt.Errorf("dial %s: refused", req.URL.Host)
	}}
	client := newTestClient(t, Config{BaseURL: "https://example.com", HTTPClient: doer, RetryCount: 0})

	err := client.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/x"}, nil)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), testAPIKey)
	assert.NotContains(t, fmt.Sprintf("%+v", err), testAPIKey)
}

func TestClient_Do_Concurrent(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		fmt.Fprintf(w, `{"success":true,"path":%q}`, r.URL.Path)
	}))
	defer server.Close()

	client := newTestClient(t, Config{BaseURL: server.URL})

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var out struct {
				Path string `json:"path"`
			}
			path := fmt.Sprintf("/item/%d", i)
			if err := client.Do(context.Background(), &Request{Method: http.MethodGet, Path: path}, &out); err != nil {
				errs <- err
				return
			}
			if out.Path != path {
				errs <- fmt.Errorf("got path %q, want %q", out.Path, path)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	assert.EqualValues(t, 20, atomic.LoadInt32(&hits))
}
