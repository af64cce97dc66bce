package checks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/distlint/distlint/internal/discovery"
	"github.com/distlint/distlint/internal/model"
	"github.com/distlint/distlint/internal/normalize"
)

// buildIndex creates a dist directory from the given files and builds
// a site index over it with the default normalization policy.
func buildIndex(t *testing.T, files map[string]string, baseURL string) *discovery.SiteIndex {
	t.Helper()

	dist := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dist, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	idx, err := discovery.Build(context.Background(), dist, baseURL, normalize.DefaultPolicy())
	if err != nil {
		t.Fatalf("discovery.Build() error = %v", err)
	}
	return idx
}

// writeRaw adds a non-HTML file to an already built dist directory.
// Useful for assets that checks resolve on disk rather than via the index.
func writeRaw(t *testing.T, dist, rel, content string) {
	t.Helper()
	path := filepath.Join(dist, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// findingsForRule filters findings down to one rule.
func findingsForRule(findings []model.Finding, ruleID string) []model.Finding {
	var out []model.Finding
	for _, f := range findings {
		if f.RuleID == ruleID {
			out = append(out, f)
		}
	}
	return out
}

// page wraps body content in a minimal valid HTML document.
func page(body string) string {
	return `<!DOCTYPE html><html lang="en"><head><title>Test</title>` +
		`<meta name="viewport" content="width=device-width, initial-scale=1"></head>` +
		`<body><h1>Test</h1>` + body + `</body></html>`
}
