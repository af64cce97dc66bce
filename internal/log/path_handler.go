package log

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// PathHandler wraps an slog.Handler to rewrite absolute dist paths into
// dist-relative form. It intercepts log records and rewrites string
// attribute values that point inside the dist directory before passing
// them to the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites keep logging the paths they have; presentation is
//     normalized in one place
type PathHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// distPath is the absolute dist root, with a trailing separator,
	// or "" when path rewriting is disabled.
	distPath string
}

// NewPathHandler creates a new PathHandler wrapping the given handler.
// String attributes whose value starts with distPath are rewritten to
// the dist-relative path. If handler is nil, the returned PathHandler
// uses slog.Default().Handler(). An empty distPath disables rewriting.
func NewPathHandler(handler slog.Handler, distPath string) *PathHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if distPath != "" {
		if abs, err := filepath.Abs(distPath); err == nil {
			distPath = abs
		}
		if !strings.HasSuffix(distPath, string(filepath.Separator)) {
			distPath += string(filepath.Separator)
		}
	}
	return &PathHandler{handler: handler, distPath: distPath}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *PathHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it to the underlying handler.
func (h *PathHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})

	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are rewritten before being added.
func (h *PathHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewrittenAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewrittenAttrs[i] = h.rewriteAttr(a)
	}
	return &PathHandler{handler: h.handler.WithAttrs(rewrittenAttrs), distPath: h.distPath}
}

// WithGroup returns a new handler with the given group name.
func (h *PathHandler) WithGroup(name string) slog.Handler {
	return &PathHandler{handler: h.handler.WithGroup(name), distPath: h.distPath}
}

// rewriteAttr rewrites a single attribute, recursively handling groups.
func (h *PathHandler) rewriteAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		rewrittenAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			rewrittenAttrs[i] = h.rewriteAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewrittenAttrs...)}
	}

	if h.distPath == "" || a.Value.Kind() != slog.KindString {
		return a
	}

	strVal := a.Value.String()
	if strings.HasPrefix(strVal, h.distPath) {
		return slog.String(a.Key, filepath.ToSlash(strings.TrimPrefix(strVal, h.distPath)))
	}
	return a
}

// LoggerOption configures logger construction.
type LoggerOption func(*loggerOptions)

type loggerOptions struct {
	distPath string
	json     bool
}

// WithDistPath enables dist-relative path rewriting for the given root.
func WithDistPath(distPath string) LoggerOption {
	return func(o *loggerOptions) {
		o.distPath = distPath
	}
}

// WithJSON switches the logger to JSON output. Useful for structured
// log aggregation in CI.
func WithJSON() LoggerOption {
	return func(o *loggerOptions) {
		o.json = true
	}
}

// NewLogger creates a new slog.Logger for audit runs.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or
// passed to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool, opts ...LoggerOption) *slog.Logger {
	var o loggerOptions
	for _, opt := range opts {
		opt(&o)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var inner slog.Handler
	if o.json {
		inner = slog.NewJSONHandler(w, handlerOpts)
	} else {
		inner = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(NewPathHandler(inner, o.distPath))
}
