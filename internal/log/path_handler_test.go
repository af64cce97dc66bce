package log

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

// TestPathHandler_RewritesDistPaths tests that absolute dist paths become relative.
func TestPathHandler_RewritesDistPaths(t *testing.T) {
	t.Parallel()

	dist := t.TempDir()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{
			name:  "file inside dist is rewritten",
			value: filepath.Join(dist, "blog", "index.html"),
			want:  "blog/index.html",
		},
		{
			name:  "path outside dist is untouched",
			value: "/etc/hosts",
			want:  "/etc/hosts",
		},
		{
			name:  "non-path value is untouched",
			value: "links/broken",
			want:  "links/broken",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			handler := NewPathHandler(slog.NewTextHandler(&buf, nil), dist)
			logger := slog.New(handler)

			logger.Info("test", "file", tt.value)

			output := buf.String()
			if !strings.Contains(output, "file="+tt.want) {
				t.Errorf("output %q does not contain file=%q", output, tt.want)
			}
		})
	}
}

// TestPathHandler_WithAttrs tests that pre-bound attributes are rewritten.
func TestPathHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	dist := t.TempDir()

	var buf bytes.Buffer
	handler := NewPathHandler(slog.NewTextHandler(&buf, nil), dist)
	logger := slog.New(handler).With("page", filepath.Join(dist, "index.html"))

	logger.Info("test")

	if !strings.Contains(buf.String(), "page=index.html") {
		t.Errorf("output %q does not contain rewritten bound attribute", buf.String())
	}
}

// TestPathHandler_Groups tests that grouped attributes are rewritten.
func TestPathHandler_Groups(t *testing.T) {
	t.Parallel()

	dist := t.TempDir()

	var buf bytes.Buffer
	handler := NewPathHandler(slog.NewTextHandler(&buf, nil), dist)
	logger := slog.New(handler)

	logger.Info("test", slog.Group("audit", slog.String("file", filepath.Join(dist, "about", "index.html"))))

	if !strings.Contains(buf.String(), "audit.file=about/index.html") {
		t.Errorf("output %q does not contain rewritten grouped attribute", buf.String())
	}
}

// TestPathHandler_EmptyDistPath tests that rewriting can be disabled.
func TestPathHandler_EmptyDistPath(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewPathHandler(slog.NewTextHandler(&buf, nil), "")
	logger := slog.New(handler)

	logger.Info("test", "file", "/srv/www/dist/index.html")

	if !strings.Contains(buf.String(), "file=/srv/www/dist/index.html") {
		t.Errorf("output %q should keep the absolute path untouched", buf.String())
	}
}

// TestNewLogger tests logger construction and level behavior.
func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("non-verbose suppresses info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		logger.Info("hidden")
		logger.Warn("visible")

		output := buf.String()
		if strings.Contains(output, "hidden") {
			t.Error("info message logged at warn level")
		}
		if !strings.Contains(output, "visible") {
			t.Error("warn message missing")
		}
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		logger.Debug("details")

		if !strings.Contains(buf.String(), "details") {
			t.Error("debug message missing in verbose mode")
		}
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true, WithJSON())

		logger.Warn("structured")

		if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
			t.Errorf("expected JSON output, got %q", buf.String())
		}
	})
}
