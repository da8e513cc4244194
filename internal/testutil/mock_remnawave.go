// Package testutil provides testing utilities for the admin BFF.
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
)

// RecordedRequest captures one request received by the mock upstream.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// MockRemnaWave is a configurable mock RemnaWave admin API for tests.
type MockRemnaWave struct {
	server   *httptest.Server
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []RecordedRequest
}

// NewMockRemnaWave starts a mock upstream server. Paths without a
// registered handler answer 404 with a JSON detail body.
func NewMockRemnaWave() *MockRemnaWave {
	mock := &MockRemnaWave{
		handlers: make(map[string]http.HandlerFunc),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		mock.mu.Lock()
		mock.requests = append(mock.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		handler, ok := mock.handlers[r.Method+" "+r.URL.Path]
		mock.mu.Unlock()

		if ok {
			handler(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail": "not found"}`)
	}))

	return mock
}

// URL returns the mock server base URL.
func (m *MockRemnaWave) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockRemnaWave) Close() {
	m.server.Close()
}

// Handle registers a handler for "METHOD /path".
func (m *MockRemnaWave) Handle(method, path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[method+" "+path] = handler
}

// RespondJSON registers a fixed JSON response for "METHOD /path".
func (m *MockRemnaWave) RespondJSON(method, path string, status int, body string) {
	m.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	})
}

// Requests returns a copy of all recorded requests.
func (m *MockRemnaWave) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RecordedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequest returns the most recent recorded request, or nil if none.
func (m *MockRemnaWave) LastRequest() *RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	req := m.requests[len(m.requests)-1]
	return &req
}

// RequestCount returns how many requests hit a given "METHOD /path", or all
// requests when both arguments are empty.
func (m *MockRemnaWave) RequestCount(method, path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if method == "" && path == "" {
		return len(m.requests)
	}
	count := 0
	for _, req := range m.requests {
		if req.Method == method && req.Path == path {
			count++
		}
	}
	return count
}

// Reset clears recorded requests and handlers.
func (m *MockRemnaWave) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.handlers = make(map[string]http.HandlerFunc)
}
