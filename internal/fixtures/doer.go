package fixtures

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// Doer is an in-memory HTTP stub. Handler receives each request together
// with its 1-based call number.
type Doer struct {
	Handler func(req *http.Request, call int) (*http.Response, error)

	mu       sync.Mutex
	requests []*http.Request
	bodies   [][]byte
}

// Do records req and delegates to Handler.
func (d *Doer) Do(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		req.Body.Close()
	}

	d.mu.Lock()
	d.requests = append(d.requests, req)
	d.bodies = append(d.bodies, body)
	call := len(d.requests)
	d.mu.Unlock()

	if d.Handler == nil {
		return JSONResponse(http.StatusOK, `{"success":true}`), nil
	}
	return d.Handler(req, call)
}

// Calls returns the number of requests made so far.
func (d *Doer) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.requests)
}

// Request returns the i-th recorded request (0-based).
func (d *Doer) Request(i int) *http.Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.requests[i]
}

// Body returns the body of the i-th recorded request (0-based).
func (d *Doer) Body(i int) []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bodies[i]
}

// JSONResponse builds a response with a JSON body.
func JSONResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}
