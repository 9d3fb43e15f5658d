// Package ui prints colored status messages to the terminal.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// ErrUnknownColorMode is returned by [ParseColorMode] for an unrecognized
// name.
var ErrUnknownColorMode = errors.New("unknown color mode")

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses "auto", "always" or "never".
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("%w: %q", ErrUnknownColorMode, s)
}

// UI writes status messages, by default to stderr so stdout stays free for
// rendered output.
type UI struct {
	out *termenv.Output
}

// New creates a UI writing to w (os.Stderr when nil). NO_COLOR disables
// color regardless of mode.
func New(w io.Writer, mode ColorMode) *UI {
	if w == nil {
		w = os.Stderr
	}
	if os.Getenv("NO_COLOR") != "" {
		mode = ColorNever
	}

	var profile termenv.Profile
	switch mode {
	case ColorNever:
		profile = termenv.Ascii
	case ColorAlways:
		profile = termenv.ANSI256
	default:
		profile = termenv.NewOutput(w).EnvColorProfile()
	}

	return &UI{out: termenv.NewOutput(w, termenv.WithProfile(profile))}
}

// Success prints a success message in green.
func (u *UI) Success(format string, args ...any) {
	u.println("✓ "+fmt.Sprintf(format, args...), termenv.ANSIGreen)
}

// Warning prints a warning message in yellow.
func (u *UI) Warning(format string, args ...any) {
	u.println("⚠ "+fmt.Sprintf(format, args...), termenv.ANSIYellow)
}

// Error prints an error message in red.
func (u *UI) Error(format string, args ...any) {
	u.println("✗ "+fmt.Sprintf(format, args...), termenv.ANSIRed)
}

// Info prints an informational message in blue.
func (u *UI) Info(format string, args ...any) {
	u.println("ℹ "+fmt.Sprintf(format, args...), termenv.ANSIBlue)
}

// Bold styles s in bold when color is enabled.
func (u *UI) Bold(s string) string {
	return u.out.String(s).Bold().String()
}

// Faint styles s dimmed when color is enabled.
func (u *UI) Faint(s string) string {
	return u.out.String(s).Faint().String()
}

type contextKey struct{}

// WithUI returns a context carrying u.
func WithUI(ctx context.Context, u *UI) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext returns the UI stored in ctx, or an uncolored UI on stderr.
func FromContext(ctx context.Context) *UI {
	if u, ok := ctx.Value(contextKey{}).(*UI); ok {
		return u
	}
	return New(nil, ColorNever)
}

// Writer returns the underlying writer.
func (u *UI) Writer() io.Writer {
	return u.out
}

func (u *UI) println(msg string, c termenv.Color) {
	_, _ = fmt.Fprintln(u.out, u.out.String(msg).Foreground(c))
}
