// Package logging provides the shared structured logger for pictree.
//
// It wraps the standard library's [log/slog] package with a single
// initialization point so every component shares one output handler and
// level. The level is controlled at startup through the PICTREE_LOG_LEVEL
// environment variable (debug, info, warn, error); unset means INFO.
//
// All output goes to stderr so it never interferes with the terminal UI
// rendered on stdout:
//
//	log := logging.New("library")
//	log.Info("forest loaded", "albums", n)
package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	initLogger sync.Once
	baseLogger *slog.Logger
)

// New returns a structured logger scoped to the given component name. The
// name is attached as a "component" attribute to every entry, so logs can
// be filtered by subsystem. An empty component returns the base logger.
func New(component string) *slog.Logger {
	initLogger.Do(func() {
		baseLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLevel(os.Getenv("PICTREE_LOG_LEVEL")),
		}))
	})
	if component == "" {
		return baseLogger
	}
	return baseLogger.With("component", component)
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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
