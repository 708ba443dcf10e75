// Package logger provides structured logging configuration using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Environment variables read by DefaultConfig.
const (
	EnvLogLevel  = "GOVIS_LOG_LEVEL"
	EnvLogFormat = "GOVIS_LOG_FORMAT"
)

// Config holds logger configuration.
type Config struct {
	Level  slog.Level
	Format string    // "text" or "json"
	Output io.Writer // defaults to os.Stderr
}

// NewLogger creates a configured slog.Logger.
func NewLogger(cfg Config) *slog.Logger {
	var handler slog.Handler

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: cfg.Level,
		// Add a source location for debug level
		AddSource: cfg.Level <= slog.LevelDebug,
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level.
// Valid values: DEBUG, INFO, WARN, WARNING, ERROR. Anything else yields fallback.
func ParseLevel(name string, fallback slog.Level) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return fallback
	}
}

// ParseFormat normalizes a format name to "json" or "text".
func ParseFormat(name string) string {
	if strings.EqualFold(strings.TrimSpace(name), "json") {
		return "json"
	}
	return "text"
}

// DefaultConfig returns the default logger configuration.
// GOVIS_LOG_LEVEL sets the level (default INFO) and GOVIS_LOG_FORMAT selects "json" output.
func DefaultConfig() Config {
	return Config{
		Level:  ParseLevel(os.Getenv(EnvLogLevel), slog.LevelInfo),
		Format: ParseFormat(os.Getenv(EnvLogFormat)),
	}
}
