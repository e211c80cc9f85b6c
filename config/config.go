// Package config reads runtime settings from the environment and builds the
// diagnostic logger from them.
package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/nathoo/clickcore/engine/inventory"
)

type Config struct {
	LogLevel  slog.Level
	LogFormat string // "text" or "json"
	LogFile   string // empty discards diagnostics in the TUI
	Capacity  int
	Seed      int64
}

func Load() *Config {
	return &Config{
		LogLevel:  parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LogFile:   getEnv("CLICKCORE_LOG_FILE", ""),
		Capacity:  getInt("CLICKCORE_CAPACITY", inventory.DefaultCapacity),
		Seed:      int64(getInt("CLICKCORE_SEED", 0)),
	}
}

// NewLogger builds a logger writing to w in the configured format.
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// OpenLog returns the writer diagnostics should go to and a close func.
// With no log file configured the fallback writer is used.
func (c *Config) OpenLog(fallback io.Writer) (io.Writer, func() error, error) {
	if c.LogFile == "" {
		return fallback, func() error { return nil }, nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getInt falls back to defaultValue on unset or malformed values.
func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}
