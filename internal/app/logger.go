package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger returns a configured slog.Logger writing to the configured log file.
// The returned closer releases the file; it is a no-op when logging to stderr.
func NewLogger(cfg *Config) (*slog.Logger, func() error, error) {
	var out io.Writer = os.Stderr
	closer := func() error { return nil }
	level := slog.LevelInfo

	if cfg != nil {
		lvl, err := parseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, err
		}
		level = lvl
		if cfg.LogFile != "" && cfg.LogFile != "-" {
			f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err != nil {
				return nil, nil, fmt.Errorf("open log file: %w", err)
			}
			out = f
			closer = f.Close
		}
	}

	return newLogger(out, cfg, level), closer, nil
}

func newLogger(out io.Writer, cfg *Config, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true, Level: level}
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}
