package simulator

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fentz26/kernelsim/internal/backend"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	OK   bool   `json:"ok"`
	Time string `json:"time"`
}

// Server serves the simulation backend API.
type Server struct {
	engine Engine
	addr   string
	log    *slog.Logger
	server *http.Server
}

// NewServer creates a new HTTP server.
func NewServer(addr string, log *slog.Logger) *Server {
	s := &Server{
		addr: addr,
		log:  log,
	}
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/simulate", s.handleSimulate)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info("simulation backend listening", "addr", s.addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleSimulate handles POST /simulate
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req backend.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	resp := s.engine.Simulate(req)
	s.log.Info("simulated", "language", req.LanguageTag, "status", resp.Status, "bytes", len(req.SourceText))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{OK: true, Time: time.Now().UTC().Format(time.RFC3339)})
}
