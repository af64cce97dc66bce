package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/distlint/distlint/internal/model"
)

// createTestReport creates a report with sample data for testing.
func createTestReport() *model.AuditReport {
	report := model.NewAuditReport("https://example.com", "/tmp/dist")
	report.PagesChecked = 3
	report.PerformedChecks = []string{"routes", "links", "canonical"}

	report.Add(
		model.NewFinding("links/broken", "index.html", "a[href='/missing/']", "Broken internal link: '/missing/'"),
		model.NewFinding("canonical/missing", "about/index.html", "head", "Missing canonical link"),
		model.NewFinding("html/title-too-long", "about/index.html", "title", "Title is 90 chars (recommended max: 60)"),
	)
	report.Sort()
	return report
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "DISTLINT AUDIT REPORT") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "https://example.com") {
			t.Error("expected output to contain the audited site")
		}
		if !strings.Contains(output, "Pages Checked: 3") {
			t.Error("expected output to contain the page count")
		}
	})

	t.Run("writes severity summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "SEVERITY SUMMARY") {
			t.Error("expected output to contain severity summary")
		}
		if !strings.Contains(output, "TOTAL:   3 findings") {
			t.Errorf("expected output to contain total count, got:\n%s", output)
		}
	})

	t.Run("groups findings by file", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "about/index.html") {
			t.Error("expected output to contain the file group header")
		}
		if !strings.Contains(output, "links/broken") {
			t.Error("expected output to contain the rule id")
		}
	})

	t.Run("verbose output includes recommendations", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true))

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "fix:") {
			t.Error("expected verbose output to contain recommendations")
		}
	})

	t.Run("truncated status", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)
		report := createTestReport()
		report.Truncated = true

		_, err := w.Write(report)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "TRUNCATED") {
			t.Error("expected output to mark the report as truncated")
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		n, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("reported %d bytes written, buffer has %d", n, buf.Len())
		}

		var decoded model.AuditReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Site != "https://example.com" {
			t.Errorf("got site %q, want https://example.com", decoded.Site)
		}
		if len(decoded.Findings) != 3 {
			t.Errorf("got %d findings, want 3", len(decoded.Findings))
		}
	})

	t.Run("pretty print is indented", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected indented output")
		}
	})

	t.Run("full writer wraps with version", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewFullJSONWriter(&buf, "1.2.3")

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var wrapped JSONReport
		if err := json.Unmarshal(buf.Bytes(), &wrapped); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if wrapped.Version != "1.2.3" {
			t.Errorf("got version %q, want 1.2.3", wrapped.Version)
		}
		if wrapped.Report == nil || wrapped.Report.TotalFindings() != 3 {
			t.Error("wrapped report missing or incomplete")
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes headings and category sections", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Distlint Audit Report") {
			t.Error("expected top-level heading")
		}
		if !strings.Contains(output, "### Links") {
			t.Error("expected a Links category section")
		}
		if !strings.Contains(output, "### Canonical") {
			t.Error("expected a Canonical category section")
		}
		if !strings.Contains(output, "links/broken") {
			t.Error("expected the rule id in the findings table")
		}
	})

	t.Run("clean report gets a tip", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(model.NewAuditReport("https://example.com", "/tmp/dist")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No issues detected") {
			t.Error("expected the clean-report tip")
		}
	})

	t.Run("includes mermaid severity chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "```mermaid") {
			t.Error("expected a mermaid code block")
		}
	})
}

// TestMultiWriter tests writing to multiple destinations.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	mw := NewMultiWriter(NewSimpleWriter(&a), NewJSONWriter(&b))

	n, err := mw.Write(createTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != a.Len()+b.Len() {
		t.Errorf("reported %d bytes, buffers hold %d", n, a.Len()+b.Len())
	}
	if a.Len() == 0 || b.Len() == 0 {
		t.Error("expected both writers to receive output")
	}
}
