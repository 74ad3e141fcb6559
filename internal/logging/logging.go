// Package logging configures structured slog output. The widget owns
// the terminal, so logs default to a file with stderr reserved for
// plain/one-shot runs.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config contains logging configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string
	// FilePath is the path to the log file. Empty means no file logging.
	FilePath string
	// WriteToStderr whether to also write to stderr.
	WriteToStderr bool
}

// DefaultConfig returns file-only logging at info level.
func DefaultConfig() Config {
	return Config{
		Level:    "info",
		FilePath: DefaultLogPath(),
	}
}

// DefaultLogPath returns the standard log file location.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hermes.log"
	}
	return filepath.Join(home, ".local", "state", "hermes", "hermes.log")
}

// Setup initializes structured logging, sets the default logger, and
// returns a cleanup function that closes the log file.
func Setup(cfg Config) (*slog.Logger, func(), error) {
	var writers []io.Writer
	cleanup := func() {}

	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, f)
		cleanup = func() { _ = f.Close() }
	}
	if cfg.WriteToStderr || len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	handler := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, cleanup, nil
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
