// Package mock provides a canned in-memory stand-in for the vision backend,
// plugged into a node Config through its Transport field, plus recorders for
// the status/error/emit sinks. It exists for tests and examples.
package mock

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
)

// Response is one canned reply.
type Response struct {
	Status int
	Body   interface{}
}

// Backend implements http.RoundTripper with per-route canned responses.
type Backend struct {
	mu           sync.Mutex
	routes       map[string]Response
	hits         map[string]int
	RequestCount int

	// ForceStatus, if non-zero, makes every call return this HTTP status
	// with ForceDetail as the backend detail field.
	ForceStatus int
	ForceDetail string

	// ForceTimeout makes every call fail with a transport timeout.
	// ForceNetworkError makes every call fail with a generic transport error.
	ForceTimeout      bool
	ForceNetworkError bool
}

func NewBackend() *Backend {
	return &Backend{
		routes: make(map[string]Response),
		hits:   make(map[string]int),
	}
}

// Handle registers a canned reply for method and path.
func (b *Backend) Handle(method, path string, status int, body interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = Response{Status: status, Body: body}
}

// Requests returns how many calls the backend has seen.
func (b *Backend) Requests() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.RequestCount
}

// Hits returns how many calls matched the given method and path.
func (b *Backend) Hits(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[method+" "+path]
}

func (b *Backend) RoundTrip(req *http.Request) (*http.Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.RequestCount++
	b.hits[req.Method+" "+req.URL.Path]++

	if b.ForceTimeout {
		return nil, &timeoutError{}
	}
	if b.ForceNetworkError {
		return nil, errors.New("connection refused")
	}
	if b.ForceStatus != 0 {
		return jsonResponse(req, b.ForceStatus, map[string]interface{}{"detail": b.ForceDetail})
	}

	key := req.Method + " " + req.URL.Path
	r, ok := b.routes[key]
	if !ok {
		return jsonResponse(req, http.StatusNotFound, map[string]interface{}{"detail": "no route for " + key})
	}
	return jsonResponse(req, r.Status, r.Body)
}

func jsonResponse(req *http.Request, status int, body interface{}) (*http.Response, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(buf)),
		Request:    req,
	}, nil
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "request timed out" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }
