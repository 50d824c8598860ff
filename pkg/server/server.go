// Package server implements the accept loop that turns each TCP
// connection into exactly one fixed-shape HTTP response.
//
// The loop is deliberately serial: at most one connection is handled at
// a time and a second client waits in the OS backlog. Incoming bytes
// are never read or parsed; every connection receives a freshly
// generated body, is written to once, and is closed. No per-connection
// failure ever stops the loop.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/fortuned-dev/fortuned/pkg/fortune"
	"github.com/fortuned-dev/fortuned/pkg/history"
	"github.com/fortuned-dev/fortuned/pkg/observability"
)

// Generator is the source of response bodies. Implemented by
// *fortune.Generator.
type Generator interface {
	Generate(ctx context.Context) (*fortune.Blob, error)
}

// Config holds the accept-loop settings.
type Config struct {
	Port            int
	WriteTimeout    time.Duration // bound on writing one response, 0 = none
	GenerateTimeout time.Duration // bound on one pipeline run, 0 = none
}

// Server owns the listening socket and the accept loop. The listener is
// the only state shared between connections.
type Server struct {
	cfg    Config
	gen    Generator
	hist   *history.Ring // nil when history is disabled
	logger *slog.Logger
}

// New creates a Server. hist may be nil.
func New(gen Generator, hist *history.Ring, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:    cfg,
		gen:    gen,
		hist:   hist,
		logger: logger,
	}
}

// ListenAndServe binds the configured port and runs the accept loop
// until ctx is cancelled. A bind failure is returned immediately and is
// the only startup failure mode.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("binding port %d: %w", s.cfg.Port, err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the accept loop on an already-bound listener. Exposed so
// tests can bind an ephemeral port themselves. The listener is closed
// when Serve returns; cancelling ctx closes it early to unblock Accept.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			ln.Close()
		case <-done:
			ln.Close()
		}
	}()

	s.logger.Info("fortune server listening", "addr", ln.Addr().String())

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.logger.Info("fortune server stopped")
				return nil
			}
			// Transient accept failures (e.g. ECONNABORTED) must not
			// stop the loop.
			s.logger.Warn("accept failed", "error", err)
			continue
		}
		s.handle(ctx, conn)
	}
}

// handle serves one connection: generate, frame, write, close. Errors
// stay within this call.
func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	start := time.Now()
	peer := conn.RemoteAddr().String()

	genCtx := ctx
	if s.cfg.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.cfg.GenerateTimeout)
		defer cancel()
	}

	blob, genErr := s.gen.Generate(genCtx)

	var resp []byte
	outcome := observability.OutcomeOK
	if genErr != nil {
		s.logger.Error("generation failed", "peer", peer, "error", genErr)
		resp = errorResponse()
		outcome = observability.OutcomeGenerationError
	} else {
		observability.GenerationDuration.
			WithLabelValues(string(blob.Mode)).
			Observe(time.Since(start).Seconds())
		resp = okResponse(blob.Content)
	}

	if s.cfg.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}
	n, werr := conn.Write(resp)
	if werr != nil {
		s.logger.Warn("response write failed", "peer", peer, "written", n, "error", werr)
		outcome = observability.OutcomeWriteError
	}

	observability.ConnectionsTotal.WithLabelValues(outcome).Inc()

	if outcome != observability.OutcomeOK {
		return
	}

	observability.ResponseBytesTotal.Add(float64(n))
	if s.hist != nil {
		s.hist.Record(history.Entry{
			Content:  string(blob.Content),
			Mode:     string(blob.Mode),
			ServedAt: blob.CreatedAt,
		})
	}
	s.logger.Info("fortune served",
		"peer", peer,
		"bytes", n,
		"mode", blob.Mode,
		"duration", time.Since(start))
}
