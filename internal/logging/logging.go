// Package logging configures the process-wide slog logger and carries
// request IDs through contexts.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

const (
	reset     = "\033[0m"
	red       = "\033[31m"
	green     = "\033[32m"
	yellow    = "\033[33m"
	magenta   = "\033[35m"
	cyan      = "\033[36m"
	white     = "\033[37m"
	boldBlue  = "\033[1;34m"
	boldWhite = "\033[1;37m"
)

var levelColors = map[slog.Level]string{
	slog.LevelDebug: cyan,
	slog.LevelInfo:  green,
	slog.LevelWarn:  yellow,
	slog.LevelError: red,
}

type contextKey string

const requestIDKey contextKey = "requestID"

// RequestIDAttr is the attribute key used for request IDs.
const RequestIDAttr = "request_id"

// ColoredHandler writes one colored line per record for terminal use.
type ColoredHandler struct {
	opts   slog.HandlerOptions
	attrs  []slog.Attr
	prefix string
	mu     *sync.Mutex
	out    io.Writer
}

// NewColoredHandler returns a handler writing to w.
func NewColoredHandler(w io.Writer, opts *slog.HandlerOptions) *ColoredHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &ColoredHandler{opts: *opts, mu: &sync.Mutex{}, out: w}
}

// Enabled reports whether the level is at or above the configured minimum.
func (h *ColoredHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats and writes the record.
func (h *ColoredHandler) Handle(ctx context.Context, r slog.Record) error {
	levelColor, ok := levelColors[r.Level]
	if !ok {
		levelColor = white
	}

	var line strings.Builder
	line.WriteString(fmt.Sprintf("%s%s%s ", magenta, r.Time.Format("15:04:05.000"), reset))
	line.WriteString(fmt.Sprintf("%s%-6s%s ", levelColor, strings.ToUpper(r.Level.String()), reset))

	if id := RequestID(ctx); id != "" {
		line.WriteString(fmt.Sprintf("%s[%s]%s ", boldBlue, id, reset))
	}

	line.WriteString(fmt.Sprintf("%s%s%s", boldWhite, r.Message, reset))

	write := func(a slog.Attr) bool {
		if a.Key == RequestIDAttr {
			return true
		}
		val := a.Value.Resolve().String()
		if a.Value.Kind() == slog.KindString {
			val = fmt.Sprintf("%q", val)
		}
		line.WriteString(fmt.Sprintf(" %s%s%s%s=%s", yellow, h.prefix, a.Key, reset, val))
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.out, line.String())
	return err
}

// WithAttrs returns a handler that always includes attrs.
func (h *ColoredHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

// WithGroup returns a handler that prefixes subsequent keys with name.
func (h *ColoredHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

// Options selects the logger output.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // color (default), text, json
	Output io.Writer
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

// Setup builds a logger from opts and installs it as the slog default.
func Setup(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var handler slog.Handler
	switch opts.Format {
	case "json":
		handler = slog.NewJSONHandler(out, handlerOpts)
	case "text":
		handler = slog.NewTextHandler(out, handlerOpts)
	default:
		handler = NewColoredHandler(out, handlerOpts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// WithRequestID stores a request ID in ctx.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// FromContext returns the default logger annotated with the request ID, if any.
func FromContext(ctx context.Context) *slog.Logger {
	if id := RequestID(ctx); id != "" {
		return slog.Default().With(RequestIDAttr, id)
	}
	return slog.Default()
}
