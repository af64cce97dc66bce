package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/distlint/distlint/internal/config"
	"github.com/distlint/distlint/internal/database"
	"github.com/distlint/distlint/internal/model"
)

// Constants for trend direction and summary messages.
const (
	trendDirectionWorsened  = "worsened"
	trendDirectionImproved  = "improved"
	trendDirectionUnchanged = "unchanged"
	noFindingsMessage       = "No findings"
)

// NewCompareCmd creates the compare command.
// This command compares audit results with historical data stored in the database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [site]",
		Short: "Compare audit results with historical data",
		Long: `Compare displays differences between the current and previous audit results.

This command retrieves historical audit data from the database and shows:
- New findings that appeared since the last audit
- Resolved findings that are no longer present
- Changes in severity counts

The comparison requires at least two audits in the database for the
specified site. Run 'distlint audit' to perform audits and save results.

The site argument is the identity the audit ran under: the --site base
URL if one was given, otherwise the absolute dist path. Use --list-sites
to see what is in the database.

Examples:
  # Compare latest two audits for a site
  distlint compare https://example.com

  # List all audit history for a site
  distlint compare --list https://example.com

  # Compare with a specific historical audit by ID
  distlint compare --with-audit-id 5 https://example.com

  # Compare audits since a specific date
  distlint compare --since "2026-01-01" https://example.com

  # Output comparison in JSON format
  distlint compare --json https://example.com

  # List all audited sites in the database
  distlint compare --list-sites`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List audit history for the specified site")
	cmd.Flags().BoolP("list-sites", "L", false,
		"List all audited sites in the database")

	// Comparison target flags
	cmd.Flags().Int64P("with-audit-id", "i", 0,
		"Compare with a specific audit by ID (use --list to see available IDs)")
	cmd.Flags().StringP("since", "s", "",
		"Compare with the first audit after this date (format: YYYY-MM-DD)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	// Handle --list-sites flag first (requires database but no site)
	listSites, err := cmd.Flags().GetBool("list-sites")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database so validation
	// failures never take the database lock.
	var site string
	if !listSites {
		if len(args) == 0 {
			return errors.New("site is required (use --list-sites to see available sites)")
		}
		site = args[0]
	}

	// Use XDG data directory for database
	dbDir := config.XDGDataDir()

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()

	// Handle --list-sites flag
	if listSites {
		return listAuditedSites(ctx, db)
	}

	// Handle --list flag
	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listAuditHistory(ctx, db, site)
	}

	// Get output format flags
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	// Get comparison target flags
	withAuditID, err := cmd.Flags().GetInt64("with-audit-id")
	if err != nil {
		return err
	}
	sinceDate, err := cmd.Flags().GetString("since")
	if err != nil {
		return err
	}

	return runComparison(ctx, db, site, withAuditID, sinceDate, jsonOutput, markdownOutput)
}

// listAuditedSites lists all sites that have audit records in the database.
func listAuditedSites(ctx context.Context, db *database.AuditDB) error {
	sites, err := db.ListAuditedSites(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sites: %w", err)
	}

	if len(sites) == 0 {
		fmt.Println("No audited sites found in the database.")
		fmt.Println("\nUse 'distlint audit <dist-path>' to audit a build directory.")
		return nil
	}

	fmt.Printf("Audited sites (%d):\n\n", len(sites))
	for _, s := range sites {
		fmt.Printf("  • %s\n", s)
	}
	fmt.Println("\nUse 'distlint compare --list <site>' to see audit history for a site.")

	return nil
}

// listAuditHistory lists all audit records for a specific site.
func listAuditHistory(ctx context.Context, db *database.AuditDB, site string) error {
	reports, err := db.GetAuditHistoryWithMetadata(ctx, site)
	if err != nil {
		return fmt.Errorf("failed to get audit history: %w", err)
	}

	if len(reports) == 0 {
		fmt.Printf("No audit history found for %s\n", site)
		fmt.Println("\nUse 'distlint audit' to audit this site.")
		return nil
	}

	fmt.Printf("Audit history for %s (%d audits):\n\n", site, len(reports))
	fmt.Printf("  %-6s  %-20s  %-7s  %s\n", "ID", "Date", "Pages", "Findings")
	fmt.Println("  " + strings.Repeat("-", 60))

	for _, meta := range reports {
		fmt.Printf("  %-6d  %-20s  %-7d  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.PagesChecked,
			formatSeveritySummary(meta.SeveritySummary),
		)
	}

	fmt.Println("\nUse 'distlint compare <site>' to compare the latest two audits.")
	fmt.Println("Use 'distlint compare --with-audit-id <id> <site>' to compare with a specific audit.")

	return nil
}

// formatSeveritySummary formats the severity summary map into a human-readable string.
func formatSeveritySummary(summary map[string]int) string {
	if summary == nil {
		return "N/A"
	}

	var parts []string
	if v := summary["error"]; v > 0 {
		parts = append(parts, fmt.Sprintf("E:%d", v))
	}
	if v := summary["warning"]; v > 0 {
		parts = append(parts, fmt.Sprintf("W:%d", v))
	}
	if v := summary["info"]; v > 0 {
		parts = append(parts, fmt.Sprintf("I:%d", v))
	}

	if len(parts) == 0 {
		return noFindingsMessage
	}
	return strings.Join(parts, " ")
}

// runComparison performs the actual comparison between audit reports.
func runComparison(ctx context.Context, db *database.AuditDB, site string, withAuditID int64, sinceDate string, jsonOutput, markdownOutput bool) error {
	reports, err := db.GetAuditHistory(ctx, site)
	if err != nil {
		return fmt.Errorf("failed to get audit history: %w", err)
	}

	if len(reports) == 0 {
		return fmt.Errorf("no audit history found for %s", site)
	}

	if len(reports) < 2 && withAuditID == 0 && sinceDate == "" {
		return fmt.Errorf("at least 2 audits are required for comparison (found %d)", len(reports))
	}

	// Latest report is always the current one
	currentReport := reports[0]
	var previousReport *model.AuditReport

	if withAuditID > 0 {
		previousReport, err = db.GetAuditReportByID(ctx, withAuditID)
		if err != nil {
			return fmt.Errorf("failed to get audit with ID %d: %w", withAuditID, err)
		}
		if previousReport == nil {
			return fmt.Errorf("audit with ID %d not found", withAuditID)
		}
		// Validate that the audit ID belongs to the same site
		if previousReport.Site != site {
			return fmt.Errorf("audit ID %d belongs to %s, not %s", withAuditID, previousReport.Site, site)
		}
	} else if sinceDate != "" {
		parsedDate, err := time.Parse("2006-01-02", sinceDate)
		if err != nil {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
		}

		// Reports are sorted newest first, so iterate in reverse to find
		// the oldest report at or after the date.
		for i := len(reports) - 1; i >= 0; i-- {
			r := reports[i]
			if r.DateAudited.After(parsedDate) || r.DateAudited.Equal(parsedDate) {
				previousReport = r
				break
			}
		}
		if previousReport == nil {
			return fmt.Errorf("no audits found since %s", sinceDate)
		}
		if previousReport == currentReport {
			return fmt.Errorf("only one audit found since %s; at least 2 audits are required for comparison", sinceDate)
		}
	} else {
		// Default: compare with the previous audit
		previousReport = reports[1]
	}

	comparison := compareReports(previousReport, currentReport)

	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	if markdownOutput {
		return outputComparisonMarkdown(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two audit reports.
type ComparisonResult struct {
	// Site is the audited site identity.
	Site string `json:"site"`

	// PreviousAudit contains metadata about the previous audit.
	PreviousAudit AuditMetadata `json:"previous_audit"`

	// CurrentAudit contains metadata about the current audit.
	CurrentAudit AuditMetadata `json:"current_audit"`

	// NewFindings contains findings that are new in the current audit.
	NewFindings []model.Finding `json:"new_findings,omitempty"`

	// ResolvedFindings contains findings that were in the previous audit but not in current.
	ResolvedFindings []model.Finding `json:"resolved_findings,omitempty"`

	// UnchangedCount is the number of findings that remain unchanged.
	UnchangedCount int `json:"unchanged_count"`

	// TrendChange describes the overall change between audits.
	TrendChange TrendChange `json:"trend_change"`
}

// AuditMetadata contains metadata about an audit for comparison display.
type AuditMetadata struct {
	// DateAudited is when the audit was performed.
	DateAudited time.Time `json:"date_audited"`

	// PagesChecked is the number of pages audited.
	PagesChecked int `json:"pages_checked"`

	// TotalFindings is the total number of findings in this audit.
	TotalFindings int `json:"total_findings"`

	// ErrorCount is the number of error findings.
	ErrorCount int `json:"error_count"`

	// WarningCount is the number of warning findings.
	WarningCount int `json:"warning_count"`

	// InfoCount is the number of informational findings.
	InfoCount int `json:"info_count"`
}

// TrendChange describes the change between audits.
type TrendChange struct {
	// Direction is "improved", "worsened", or "unchanged".
	Direction string `json:"direction"`

	// ErrorDelta is the change in error findings count.
	ErrorDelta int `json:"error_delta"`

	// WarningDelta is the change in warning findings count.
	WarningDelta int `json:"warning_delta"`

	// InfoDelta is the change in informational findings count.
	InfoDelta int `json:"info_delta"`
}

// compareReports compares two audit reports and generates a comparison result.
func compareReports(previous, current *model.AuditReport) *ComparisonResult {
	result := &ComparisonResult{
		Site:          current.Site,
		PreviousAudit: auditMetadata(previous),
		CurrentAudit:  auditMetadata(current),
	}

	// Build finding maps for comparison
	previousFindings := make(map[string]model.Finding, len(previous.Findings))
	for _, f := range previous.Findings {
		previousFindings[f.Key()] = f
	}
	currentFindings := make(map[string]model.Finding, len(current.Findings))
	for _, f := range current.Findings {
		currentFindings[f.Key()] = f
	}

	// Find new findings (in current but not in previous)
	for _, f := range current.Findings {
		if _, exists := previousFindings[f.Key()]; !exists {
			result.NewFindings = append(result.NewFindings, f)
		}
	}

	// Find resolved findings (in previous but not in current)
	for _, f := range previous.Findings {
		if _, exists := currentFindings[f.Key()]; !exists {
			result.ResolvedFindings = append(result.ResolvedFindings, f)
		} else {
			result.UnchangedCount++
		}
	}

	result.TrendChange = calculateTrendChange(result.PreviousAudit, result.CurrentAudit)

	return result
}

// auditMetadata extracts display metadata from an audit report.
func auditMetadata(r *model.AuditReport) AuditMetadata {
	return AuditMetadata{
		DateAudited:   r.DateAudited,
		PagesChecked:  r.PagesChecked,
		TotalFindings: r.TotalFindings(),
		ErrorCount:    r.Errors(),
		WarningCount:  r.Warnings(),
		InfoCount:     r.Infos(),
	}
}

// calculateTrendChange calculates the change between two audits.
func calculateTrendChange(previous, current AuditMetadata) TrendChange {
	change := TrendChange{
		ErrorDelta:   current.ErrorCount - previous.ErrorCount,
		WarningDelta: current.WarningCount - previous.WarningCount,
		InfoDelta:    current.InfoCount - previous.InfoCount,
	}

	// Determine overall direction based on weighted score.
	// Error changes dominate warning changes, which dominate info.
	previousScore := previous.ErrorCount*100 + previous.WarningCount*10 + previous.InfoCount
	currentScore := current.ErrorCount*100 + current.WarningCount*10 + current.InfoCount

	if currentScore < previousScore {
		change.Direction = trendDirectionImproved
	} else if currentScore > previousScore {
		change.Direction = trendDirectionWorsened
	} else {
		change.Direction = trendDirectionUnchanged
	}

	return change
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonMarkdown outputs the comparison result in Markdown format.
func outputComparisonMarkdown(result *ComparisonResult) error {
	fmt.Printf("# Audit Comparison: %s\n\n", result.Site)

	fmt.Println("## Summary")
	fmt.Printf("\n**Status:** %s\n\n", formatTrendDirection(result.TrendChange.Direction))

	fmt.Println("| Metric | Previous | Current | Change |")
	fmt.Println("|--------|----------|---------|--------|")
	fmt.Printf("| Date | %s | %s | - |\n",
		result.PreviousAudit.DateAudited.Format("2006-01-02 15:04"),
		result.CurrentAudit.DateAudited.Format("2006-01-02 15:04"))
	fmt.Printf("| Pages | %d | %d | %s |\n",
		result.PreviousAudit.PagesChecked,
		result.CurrentAudit.PagesChecked,
		formatDelta(result.CurrentAudit.PagesChecked-result.PreviousAudit.PagesChecked))
	fmt.Printf("| Errors | %d | %d | %s |\n",
		result.PreviousAudit.ErrorCount,
		result.CurrentAudit.ErrorCount,
		formatDelta(result.TrendChange.ErrorDelta))
	fmt.Printf("| Warnings | %d | %d | %s |\n",
		result.PreviousAudit.WarningCount,
		result.CurrentAudit.WarningCount,
		formatDelta(result.TrendChange.WarningDelta))
	fmt.Printf("| Info | %d | %d | %s |\n",
		result.PreviousAudit.InfoCount,
		result.CurrentAudit.InfoCount,
		formatDelta(result.TrendChange.InfoDelta))
	fmt.Printf("| **Total** | **%d** | **%d** | **%s** |\n",
		result.PreviousAudit.TotalFindings,
		result.CurrentAudit.TotalFindings,
		formatDelta(result.CurrentAudit.TotalFindings-result.PreviousAudit.TotalFindings))

	if len(result.NewFindings) > 0 {
		fmt.Printf("\n## New Findings (%d)\n\n", len(result.NewFindings))
		for _, f := range result.NewFindings {
			fmt.Printf("- **[%s]** %s: %s\n", f.SeverityText, f.RuleID, f.Message)
			fmt.Printf("  - File: `%s`\n", f.File)
			if f.Selector != "" {
				fmt.Printf("  - Selector: `%s`\n", f.Selector)
			}
		}
	}

	if len(result.ResolvedFindings) > 0 {
		fmt.Printf("\n## Resolved Findings (%d)\n\n", len(result.ResolvedFindings))
		for _, f := range result.ResolvedFindings {
			fmt.Printf("- ~~**[%s]** %s: %s~~\n", f.SeverityText, f.RuleID, f.File)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Printf("\n---\n\n*%d findings unchanged*\n", result.UnchangedCount)
	}

	return nil
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Audit Comparison: %s\n", result.Site)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nStatus: %s\n", formatTrendDirection(result.TrendChange.Direction))

	fmt.Printf("\nPrevious audit: %s (%d pages)\n",
		result.PreviousAudit.DateAudited.Format("2006-01-02 15:04:05"),
		result.PreviousAudit.PagesChecked)
	fmt.Printf("Current audit:  %s (%d pages)\n",
		result.CurrentAudit.DateAudited.Format("2006-01-02 15:04:05"),
		result.CurrentAudit.PagesChecked)

	fmt.Println("\nFindings Summary:")
	fmt.Printf("  %-10s  %-10s  %-10s  %-10s\n", "Severity", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Error",
		result.PreviousAudit.ErrorCount, result.CurrentAudit.ErrorCount,
		formatDelta(result.TrendChange.ErrorDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Warning",
		result.PreviousAudit.WarningCount, result.CurrentAudit.WarningCount,
		formatDelta(result.TrendChange.WarningDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Info",
		result.PreviousAudit.InfoCount, result.CurrentAudit.InfoCount,
		formatDelta(result.TrendChange.InfoDelta))
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Total",
		result.PreviousAudit.TotalFindings, result.CurrentAudit.TotalFindings,
		formatDelta(result.CurrentAudit.TotalFindings-result.PreviousAudit.TotalFindings))

	if len(result.NewFindings) > 0 {
		fmt.Printf("\nNew Findings (%d):\n", len(result.NewFindings))
		for _, f := range result.NewFindings {
			fmt.Printf("  [+] [%s] %s: %s\n", f.SeverityText, f.RuleID, f.Message)
			fmt.Printf("      File: %s\n", f.File)
		}
	}

	if len(result.ResolvedFindings) > 0 {
		fmt.Printf("\nResolved Findings (%d):\n", len(result.ResolvedFindings))
		for _, f := range result.ResolvedFindings {
			fmt.Printf("  [-] [%s] %s: %s\n", f.SeverityText, f.RuleID, f.File)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Printf("\nUnchanged: %d findings\n", result.UnchangedCount)
	}

	return nil
}

// formatTrendDirection formats the trend direction for display.
func formatTrendDirection(direction string) string {
	switch direction {
	case trendDirectionImproved:
		return "IMPROVED (fewer or less severe findings)"
	case trendDirectionWorsened:
		return "WORSENED (more or more severe findings)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
