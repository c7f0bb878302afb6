package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"strings"
)

// New builds a slog logger writing to w. format is "text" or "json"; level
// is any name slog understands (debug, info, warn, error).
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return slog.New(handler), nil
}

// Install makes logger the process default, including for the standard log
// package (used by net/http for its own errors).
func Install(logger *slog.Logger) {
	slog.SetDefault(logger)
	log.SetFlags(0)
}
