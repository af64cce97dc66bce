package report

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/distlint/distlint/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for CI job summaries and documentation.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	titler cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		titler:     cases.Title(language.English),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AuditReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeFindings(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with audit information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AuditReport) {
	md.H1("Distlint Audit Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Site", "`" + report.Site + "`"},
			{"Dist Path", "`" + report.DistPath + "`"},
			{"Audit Date", report.DateAudited.Format("2006-01-02 15:04:05 MST")},
			{"Pages Checked", strconv.Itoa(report.PagesChecked)},
			{"Status", w.statusText(report)},
		},
	})
	md.PlainText("")
}

// statusText returns the status text based on report state.
func (w *MarkdownWriter) statusText(report *model.AuditReport) string {
	if report.ErrorMessage != "" {
		return "❌ Error - " + report.ErrorMessage
	}
	if report.Truncated {
		return "⚠️ Truncated (error budget exhausted)"
	}
	return "✅ Complete"
}

// writeSummary writes the severity summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.AuditReport) {
	md.H2("Severity Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"🔴 Error", strconv.Itoa(report.Errors())},
			{"🟡 Warning", strconv.Itoa(report.Warnings())},
			{"⚪ Info", strconv.Itoa(report.Infos())},
			{"**Total**", "**" + strconv.Itoa(report.TotalFindings()) + "**"},
		},
	})
	md.PlainText("")

	if report.HasFindings() {
		w.writePieChart(md, report)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.AuditReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Finding Severity Distribution"),
		piechart.WithShowData(true),
	)

	if n := report.Errors(); n > 0 {
		chart.LabelAndIntValue("Error", uint64(n))
	}
	if n := report.Warnings(); n > 0 {
		chart.LabelAndIntValue("Warning", uint64(n))
	}
	if n := report.Infos(); n > 0 {
		chart.LabelAndIntValue("Info", uint64(n))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on severity counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.AuditReport) {
	switch {
	case report.Errors() > 0:
		md.Cautionf(
			"Audit failed. %d error-level finding(s) must be fixed before release.",
			report.Errors(),
		)
	case report.Warnings() > 0:
		md.Warningf(
			"%d warning(s) found. The build output works but should be cleaned up.",
			report.Warnings(),
		)
	case report.TotalFindings() > 0:
		md.Note("Only informational findings detected.")
	default:
		md.Tip("No issues detected in the build output.")
	}
	md.PlainText("")
}

// writeFindings writes all findings grouped by rule category.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, report *model.AuditReport) {
	md.H2("Findings")
	md.PlainText("")

	if !report.HasFindings() {
		md.PlainText("No findings.")
		md.PlainText("")
		return
	}

	byCategory := make(map[string][]model.Finding)
	for _, f := range report.Findings {
		byCategory[ruleCategory(f.RuleID)] = append(byCategory[ruleCategory(f.RuleID)], f)
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		md.PlainText("### " + w.titler.String(strings.ReplaceAll(category, "-", " ")))
		md.PlainText("")
		w.writeFindingsTable(md, byCategory[category])
	}
}

// writeFindingsTable writes a table of findings with details.
func (w *MarkdownWriter) writeFindingsTable(md *markdown.Markdown, findings []model.Finding) {
	rows := make([][]string, len(findings))
	for i, f := range findings {
		file := f.File
		if file == "" {
			file = "-"
		}
		selector := f.Selector
		if selector == "" {
			selector = "-"
		}
		rows[i] = []string{
			f.RuleID,
			f.SeverityText,
			"`" + file + "`",
			truncateString(selector, 40),
			truncateString(f.Message, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Rule", "Severity", "File", "Selector", "Message"},
		Rows:   rows,
	})
	md.PlainText("")

	// One collapsible recommendation per distinct rule, not per finding.
	seen := make(map[string]struct{})
	for _, f := range findings {
		if f.Recommendation == "" {
			continue
		}
		if _, ok := seen[f.RuleID]; ok {
			continue
		}
		seen[f.RuleID] = struct{}{}
		md.Details("How to fix "+f.RuleID, f.Recommendation)
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [distlint](https://github.com/distlint/distlint)*")
}

// ruleCategory returns the category portion of a rule id, e.g. "links"
// for "links/broken".
func ruleCategory(ruleID string) string {
	if i := strings.IndexByte(ruleID, '/'); i >= 0 {
		return ruleID[:i]
	}
	return ruleID
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
