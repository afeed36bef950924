// Package api implements the local mock of the analysis service.
//
// It answers the same two requests as the hosted service with a canned
// analysis, so the client can be exercised without network access or
// credentials.
package api

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Server is the mock analysis service.
type Server struct {
	addr    string
	latency time.Duration
	mux     *http.ServeMux
	server  *http.Server

	mu      sync.Mutex
	commits map[string]string // repo URL -> last committed document
}

// Option configures a Server.
type Option func(*Server)

// WithLatency delays every analyze and commit response by d.
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// New creates a new mock server.
func New(addr string, opts ...Option) *Server {
	s := &Server{addr: addr, commits: make(map[string]string)}
	for _, opt := range opts {
		opt(s)
	}
	s.mux = http.NewServeMux()
	s.registerRoutes()
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /analyze", s.handleAnalyze)
	s.mux.HandleFunc("POST /commit", s.handleCommit)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	log.Printf("docsync mock service listening on %s", s.addr)
	return s.server.ListenAndServe()
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Committed returns the last document committed for repoURL.
func (s *Server) Committed(repoURL string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.commits[repoURL]
	return doc, ok
}

// wait applies the configured latency, giving up when the client does.
func (s *Server) wait(r *http.Request) bool {
	if s.latency <= 0 {
		return true
	}
	select {
	case <-time.After(s.latency):
		return true
	case <-r.Context().Done():
		return false
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Printf("json encode error: %v", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// readJSON decodes a JSON request body into v.
func readJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
