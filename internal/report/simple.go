package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/distlint/distlint/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with severity markers
// and findings grouped by file.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no findings are shown.
	showEmpty bool

	// verbose enables recommendations in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with impact and recommendations.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.AuditReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeFindings(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with audit information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.AuditReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         DISTLINT AUDIT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Site:          %s\n", report.Site))
	sb.WriteString(fmt.Sprintf("Dist Path:     %s\n", report.DistPath))
	sb.WriteString(fmt.Sprintf("Audit Date:    %s\n", report.DateAudited.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Pages Checked: %d\n", report.PagesChecked))

	switch {
	case report.ErrorMessage != "":
		sb.WriteString(fmt.Sprintf("Status:        ERROR - %s\n", report.ErrorMessage))
	case report.Truncated:
		sb.WriteString("Status:        TRUNCATED (error budget exhausted)\n")
	default:
		sb.WriteString("Status:        Complete\n")
	}

	sb.WriteString("\n")
}

// writeSummary writes the severity summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.AuditReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SEVERITY SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  ERROR:   %d\n", report.Errors()))
	sb.WriteString(fmt.Sprintf("  WARN:    %d\n", report.Warnings()))
	sb.WriteString(fmt.Sprintf("  INFO:    %d\n", report.Infos()))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  TOTAL:   %d findings\n", report.TotalFindings()))
	sb.WriteString("\n")
}

// writeFindings writes all findings grouped by file.
func (w *SimpleWriter) writeFindings(sb *strings.Builder, report *model.AuditReport) {
	if !report.HasFindings() && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FINDINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if !report.HasFindings() {
		sb.WriteString("  No findings\n\n")
		return
	}

	byFile, files := report.FindingsByFile()
	for _, file := range files {
		name := file
		if name == "" {
			name = "(site)"
		}
		sb.WriteString(fmt.Sprintf("%s\n", name))

		for _, f := range byFile[file] {
			sb.WriteString(fmt.Sprintf("  [%s] %s: %s\n", w.severityIndicator(f.Severity), f.RuleID, f.Message))
			if f.Selector != "" {
				sb.WriteString(fmt.Sprintf("      at %s\n", f.Selector))
			}
			if w.verbose && f.Recommendation != "" {
				sb.WriteString(fmt.Sprintf("      fix: %s\n", f.Recommendation))
			}
		}
		sb.WriteString("\n")
	}
}

// severityIndicator returns a short marker for the severity level.
func (w *SimpleWriter) severityIndicator(severity model.Severity) string {
	switch severity {
	case model.SeverityError:
		return "x"
	case model.SeverityWarning:
		return "!"
	case model.SeverityInfo:
		return "i"
	default:
		return "?"
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by distlint\n")
	sb.WriteString("https://github.com/distlint/distlint\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
