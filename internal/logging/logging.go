// Package logging configures structured logging with slog.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ErrUnknownFormat is returned by [ParseFormat] for an unrecognized name.
var ErrUnknownFormat = errors.New("unknown log format")

// Format is the log output encoding.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
)

// ParseFormat parses "text" or "json". The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", Text:
		return Text, nil
	case JSON:
		return JSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// New returns a logger writing to w (os.Stderr when nil). Debug lowers the
// level from Info to Debug.
func New(w io.Writer, format Format, debug bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case JSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
