// Package fortune produces the response body served on each connection
// by invoking an external quote source, optionally piped through a
// text-art formatter.
//
// The formatter is probed once at construction. When it is absent the
// generator degrades to plain quote output for the life of the process;
// when it is present but fails at runtime, the failure is reported as a
// GenerationError rather than silently falling back.
package fortune

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"time"
)

// Mode records how a blob was produced.
type Mode string

const (
	// ModeFormatted means the quote was piped through the text-art formatter.
	ModeFormatted Mode = "formatted"
	// ModePlain means the raw quote output was used.
	ModePlain Mode = "plain"
)

// Blob is one generated response body. A fresh Blob is produced per
// connection and never shared between connections.
type Blob struct {
	Content   []byte
	Mode      Mode
	CreatedAt time.Time
}

// Config holds the external command names for the generator.
type Config struct {
	QuoteCommand  string // e.g. "fortune"
	FormatCommand string // e.g. "cowsay"
}

// Generator invokes the external pipeline and caches the formatter
// capability probe performed at construction.
type Generator struct {
	runner    Runner
	quote     string
	format    string
	canFormat bool
	logger    *slog.Logger
}

// New creates a Generator and probes the formatter on the command
// search path. The probe result is cached for the process lifetime.
func New(runner Runner, cfg Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}

	g := &Generator{
		runner: runner,
		quote:  cfg.QuoteCommand,
		format: cfg.FormatCommand,
		logger: logger,
	}

	if path, err := runner.LookPath(cfg.FormatCommand); err == nil {
		g.canFormat = true
		logger.Debug("text-art formatter found", "command", cfg.FormatCommand, "path", path)
	} else {
		logger.Warn("text-art formatter not found, output degrades to plain quotes",
			"command", cfg.FormatCommand)
	}

	return g
}

// CanFormat reports whether the text-art formatter was found at startup.
func (g *Generator) CanFormat() bool { return g.canFormat }

// Generate runs the pipeline and returns a fresh Blob. Any start
// failure, non-zero exit, or empty quote output is a *GenerationError.
func (g *Generator) Generate(ctx context.Context) (*Blob, error) {
	quote, err := g.runner.Run(ctx, nil, g.quote)
	if err != nil {
		return nil, &GenerationError{Command: g.quote, Err: err}
	}
	if len(bytes.TrimSpace(quote)) == 0 {
		return nil, &GenerationError{Command: g.quote, Err: errors.New("empty output")}
	}

	content := quote
	mode := ModePlain

	if g.canFormat {
		formatted, err := g.runner.Run(ctx, quote, g.format)
		if err != nil {
			return nil, &GenerationError{Command: g.format, Err: err}
		}
		content = formatted
		mode = ModeFormatted
	}

	return &Blob{
		Content:   content,
		Mode:      mode,
		CreatedAt: time.Now(),
	}, nil
}
