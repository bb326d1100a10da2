package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Server represents the HTTP server
type Server struct {
	jobManager *JobManager
	addr       string
	server     *http.Server
}

// NewServer creates a new HTTP server
func NewServer(addr string) *Server {
	return &Server{
		jobManager: NewJobManager(),
		addr:       addr,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/layouts", s.handleLayouts)
	mux.HandleFunc("/api/v1/layouts/", s.handleLayoutsWithID)

	handler := s.loggingMiddleware(s.corsMiddleware(mux))

	s.server = &http.Server{
		Addr:    s.addr,
		Handler: handler,
	}

	slog.Info("Starting HTTP server", "addr", s.addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down HTTP server")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// handleLayouts handles /api/v1/layouts
func (s *Server) handleLayouts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateLayout(w, r)
	case http.MethodGet:
		s.handleListLayouts(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleLayoutsWithID handles /api/v1/layouts/:id
func (s *Server) handleLayoutsWithID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	jobID := strings.TrimPrefix(r.URL.Path, "/api/v1/layouts/")
	if jobID == "" || strings.Contains(jobID, "/") {
		http.Error(w, "Job ID required", http.StatusBadRequest)
		return
	}

	job, exists := s.jobManager.GetJob(jobID)
	if !exists {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

// handleCreateLayout handles POST /api/v1/layouts
func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	var config JobConfig
	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	// Validate config
	if len(config.Areas) == 0 {
		http.Error(w, "areas is required", http.StatusBadRequest)
		return
	}
	if config.Width <= 0 {
		config.Width = 600
	}
	if config.Height <= 0 {
		config.Height = 350
	}
	if config.Padding < 0 {
		config.Padding = 0
	}

	job := s.jobManager.CreateJob(config)

	// Start worker in background
	go runJob(context.Background(), s.jobManager, job.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(job)
}

// handleListLayouts handles GET /api/v1/layouts
func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	jobs := s.jobManager.ListJobs()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jobs)
}

// loggingMiddleware logs each request with timing
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

// corsMiddleware allows cross-origin requests from rendering frontends
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
