// Package apitest provides a fake ecowallet backend for tests.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/ecowallet-client/internal/config"
)

// Prefix is the versioned path the fake backend serves under.
const Prefix = "/api/v1"

// Recorded is one request observed by the Backend.
type Recorded struct {
	Method    string
	Path      string
	Query     string
	Token     string
	RequestID string
	Body      map[string]any
}

// Backend is an httptest server routed with chi that records every request.
type Backend struct {
	*httptest.Server

	router chi.Router
	api    chi.Router

	mu       sync.Mutex
	requests []Recorded
}

// NewBackend starts a Backend that is closed when the test ends.
// Unrouted paths answer 404 with an error envelope.
func NewBackend(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{router: chi.NewRouter()}
	b.router.Use(b.record)
	b.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		JSON(w, http.StatusNotFound, Error("route not found"))
	})
	b.router.Route(Prefix, func(r chi.Router) {
		b.api = r
	})

	b.Server = httptest.NewServer(b.router)
	t.Cleanup(b.Close)
	return b
}

// Config returns an APIConfig pointing at the Backend.
func (b *Backend) Config() config.APIConfig {
	return config.APIConfig{
		BaseURL:       b.URL,
		VersionPrefix: Prefix,
		Timeout:       5 * time.Second,
		UserAgent:     "ecowallet-test",
	}
}

// Reply registers a route answering with a fixed JSON body.
func (b *Backend) Reply(method, pattern string, status int, body any) {
	b.api.MethodFunc(method, pattern, func(w http.ResponseWriter, _ *http.Request) {
		JSON(w, status, body)
	})
}

// HandleFunc registers a custom handler.
func (b *Backend) HandleFunc(method, pattern string, h http.HandlerFunc) {
	b.api.MethodFunc(method, pattern, h)
}

// Requests returns a copy of every recorded request.
func (b *Backend) Requests() []Recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Recorded, len(b.requests))
	copy(out, b.requests)
	return out
}

// Count returns the number of recorded requests.
func (b *Backend) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

// Last returns the most recent request. Panics when none was recorded.
func (b *Backend) Last() Recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[len(b.requests)-1]
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := Recorded{
			Method:    r.Method,
			Path:      strings.TrimPrefix(r.URL.Path, Prefix),
			Query:     r.URL.RawQuery,
			Token:     strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "),
			RequestID: r.Header.Get("X-Request-ID"),
		}
		if r.Body != nil {
			data, _ := io.ReadAll(r.Body)
			r.Body.Close()
			if len(data) > 0 {
				_ = json.Unmarshal(data, &rec.Body)
			}
			r.Body = io.NopCloser(strings.NewReader(string(data)))
		}

		b.mu.Lock()
		b.requests = append(b.requests, rec)
		b.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// JSON writes body as a JSON response.
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Error builds an error envelope.
func Error(message string) map[string]any {
	return map[string]any{"status": "error", "message": message}
}

// Success builds a success envelope merged with fields.
func Success(fields map[string]any) map[string]any {
	out := map[string]any{"status": "success"}
	for k, v := range fields {
		out[k] = v
	}
	return out
}
