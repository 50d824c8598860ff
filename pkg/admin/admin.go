// Package admin serves the operational HTTP endpoints (health, status,
// metrics, recent fortunes) on a listener separate from the art port.
// Only this listener speaks real HTTP; the art port never parses its
// input.
package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fortuned-dev/fortuned/pkg/history"
)

// Capabilities reports what the content generator found on the host.
// Implemented by *fortune.Generator.
type Capabilities interface {
	CanFormat() bool
}

// Config holds the admin listener settings.
type Config struct {
	Port           int
	MetricsEnabled bool
	MetricsPath    string
}

// Server is the admin HTTP listener.
type Server struct {
	cfg     Config
	caps    Capabilities
	hist    *history.Ring // nil when history is disabled
	logger  *slog.Logger
	started time.Time
}

// New creates an admin Server. hist may be nil.
func New(caps Capabilities, hist *history.Ring, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:     cfg,
		caps:    caps,
		hist:    hist,
		logger:  logger,
		started: time.Now(),
	}
}

// Handler builds the admin mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /recent", s.handleRecent)

	if s.cfg.MetricsEnabled {
		mux.Handle("GET "+s.cfg.MetricsPath, promhttp.Handler())
	}

	return mux
}

// status is the JSON shape served on /status.
type status struct {
	Status             string `json:"status"`
	FormatterAvailable bool   `json:"formatter_available"`
	HistorySize        int    `json:"history_size"`
	UptimeSeconds      int64  `json:"uptime_seconds"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	st := status{
		Status:             "ok",
		FormatterAvailable: s.caps.CanFormat(),
		UptimeSeconds:      int64(time.Since(s.started).Seconds()),
	}
	if s.hist != nil {
		st.HistorySize = s.hist.Len()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(st)
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	if s.hist == nil {
		http.Error(w, "history disabled", http.StatusNotFound)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries := s.hist.Recent(limit)
	if entries == nil {
		entries = []history.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// ListenAndServe runs the admin listener until ctx is cancelled, then
// shuts it down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("admin listener starting", "port", s.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
