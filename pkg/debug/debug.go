// Package debug provides category-based debug logging for fortuned.
//
// Two orthogonal controls:
//   - Categories (WHAT to debug): controlled via the FORTUNED_DEBUG env var
//   - Level (HOW MUCH detail): controlled via the FORTUNED_LOG_LEVEL env var
//
// Usage:
//
//	debug.Log("generator", "running command", "name", name)
//	if debug.Enabled("generator") { /* expensive formatting */ }
//
// Categories: server, generator, admin, config, all.
package debug

import (
	"log/slog"
	"os"
	"strings"
)

// categories holds the set of enabled debug categories.
// Access is read-only after init, so no synchronization needed.
var categories map[string]bool

func init() {
	categories = parseCategories(os.Getenv("FORTUNED_DEBUG"))
}

// Enabled reports whether debug output is active for the given category.
func Enabled(category string) bool {
	return categories["all"] || categories[category]
}

// Log emits a debug message for the given category.
// If the category is not enabled, this is a no-op.
func Log(category string, msg string, args ...any) {
	if !Enabled(category) {
		return
	}
	slog.Debug(msg, append([]any{"debug", category}, args...)...)
}

// Level returns the slog level selected by FORTUNED_LOG_LEVEL, defaulting
// to Info.
func Level() slog.Level {
	return ParseLevel(os.Getenv("FORTUNED_LOG_LEVEL"))
}

// ParseLevel converts a level string to a slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO", "":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Truncate returns s truncated to maxLen characters, with "..." appended
// if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func parseCategories(s string) map[string]bool {
	m := make(map[string]bool)
	if s == "" {
		return m
	}
	for _, cat := range strings.Split(s, ",") {
		cat = strings.TrimSpace(strings.ToLower(cat))
		if cat != "" {
			m[cat] = true
		}
	}
	return m
}
