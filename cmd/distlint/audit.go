package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/distlint/distlint/internal/checks"
	"github.com/distlint/distlint/internal/config"
	"github.com/distlint/distlint/internal/database"
	"github.com/distlint/distlint/internal/discovery"
	"github.com/distlint/distlint/internal/log"
	"github.com/distlint/distlint/internal/model"
	"github.com/distlint/distlint/internal/report"
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit <dist-path>",
		Short: "Audit a static-site build output directory",
		Long: `Audit reads the generated HTML under the given dist directory and
checks it for structural and hygiene problems:

- Broken internal links and anchors
- URL normalization violations (trailing slashes, index.html, query params)
- Canonical link and sitemap consistency
- Missing or malformed HTML metadata (lang, title, viewport, descriptions)
- Heading structure and accessibility basics
- Open Graph and JSON-LD structured data
- Mixed content and unsafe target="_blank" links

All checks run against files on disk; no network requests are made.

The exit code is non-zero when any error-severity finding is reported,
or, with --strict, when any warning is reported.

Examples:
  # Audit a build directory with default rules
  distlint audit ./dist

  # Enable origin-sensitive checks by naming the deployed site
  distlint audit --site https://example.com ./dist

  # Use a custom rules file
  distlint audit -c rules.yml ./dist

  # Output JSON report to a file
  distlint audit --json -o report.json ./dist

  # Audit only part of the site
  distlint audit --include "blog/**" --exclude "blog/drafts/**" ./dist`,
		Args: cobra.ExactArgs(1),
		RunE: runAuditCmd,
	}

	// Site identity flags
	cmd.Flags().StringP("site", "s", "",
		"Canonical base URL of the deployed site (e.g. https://example.com)")

	// Rules file
	cmd.Flags().StringP("config", "c", "",
		"Rules file path (default: .distlint.yml in current or home directory)")

	// Audit behavior flags
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of pages audited concurrently")
	cmd.Flags().IntP("max-errors", "e", config.DefaultMaxErrors,
		"Stop auditing after this many error findings (0 = no limit)")
	cmd.Flags().Bool("strict", false,
		"Treat warning findings as failures for the exit code")
	cmd.Flags().StringSlice("include", nil,
		"Glob patterns selecting files to audit (default: all HTML files)")
	cmd.Flags().StringSlice("exclude", nil,
		"Glob patterns excluding files from the audit")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Suite toggle shortcuts. These override the rules file without
	// requiring one.
	cmd.Flags().Bool("no-sitemap-check", false,
		"Skip the sitemap consistency checks")
	cmd.Flags().Bool("check-assets", false,
		"Verify that referenced assets (scripts, stylesheets, images) exist")
	cmd.Flags().Bool("check-structured-data", false,
		"Validate JSON-LD structured data blocks")
	cmd.Flags().Bool("check-security", false,
		"Run the security hygiene checks (target=_blank, mixed content)")
	cmd.Flags().Bool("check-duplicates", false,
		"Detect duplicate titles, descriptions, and h1s across pages")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Do not save the audit result to the history database")

	return cmd
}

// configError marks fatal configuration problems so Execute can
// distinguish them (exit code 2) from audit findings (exit code 1).
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return &configError{err: err}
	}

	if err := cfg.Validate(); err != nil {
		return &configError{err: fmt.Errorf("configuration error: %w", err)}
	}

	// Set up structured logging. File paths in log output are rewritten
	// to be dist-relative so logs read the same on every machine.
	logger := log.NewLogger(os.Stderr, cfg.Verbose, log.WithDistPath(cfg.DistPath))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runAudit(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.DistPath = args[0]
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.Site, err = cmd.Flags().GetString("site")
	if err != nil {
		return nil, err
	}

	cfg.Workers, err = cmd.Flags().GetInt("workers")
	if err != nil {
		return nil, err
	}

	cfg.MaxErrors, err = cmd.Flags().GetInt("max-errors")
	if err != nil {
		return nil, err
	}

	cfg.Strict, err = cmd.Flags().GetBool("strict")
	if err != nil {
		return nil, err
	}

	cfg.Include, err = cmd.Flags().GetStringSlice("include")
	if err != nil {
		return nil, err
	}

	cfg.Exclude, err = cmd.Flags().GetStringSlice("exclude")
	if err != nil {
		return nil, err
	}

	cfg.RulesFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load rules from the rules file.
	// If the user explicitly specified a rules file path, error if not found.
	// If no path was specified, silently fall back to the defaults.
	explicitRulesPath := cfg.RulesFilePath != ""
	rulesPath := config.FindRulesFile(cfg.RulesFilePath)

	if rulesPath != "" {
		cfg.Rules, err = config.LoadRulesFile(rulesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load rules file %s: %w", rulesPath, err)
		}
	} else if explicitRulesPath {
		return nil, fmt.Errorf("rules file not found: %s", cfg.RulesFilePath)
	}

	// The --site flag takes precedence over the rules file's base_url.
	if cfg.Site == "" {
		cfg.Site = cfg.Rules.Site.BaseURL
	}

	if err := applySuiteToggles(cmd, cfg.Rules); err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.NoSave, err = cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// applySuiteToggles applies the suite shortcut flags on top of the
// loaded rules. Flags only ever turn suites on (or, for the sitemap,
// off); everything finer-grained belongs in the rules file.
func applySuiteToggles(cmd *cobra.Command, rules *config.Rules) error {
	noSitemap, err := cmd.Flags().GetBool("no-sitemap-check")
	if err != nil {
		return err
	}
	if noSitemap {
		rules.Sitemap = config.SitemapRules{}
	}

	checkAssets, err := cmd.Flags().GetBool("check-assets")
	if err != nil {
		return err
	}
	if checkAssets {
		rules.Assets.CheckBrokenAssets = true
	}

	checkStructured, err := cmd.Flags().GetBool("check-structured-data")
	if err != nil {
		return err
	}
	if checkStructured {
		rules.StructuredData.CheckJSONLD = true
	}

	checkSecurity, err := cmd.Flags().GetBool("check-security")
	if err != nil {
		return err
	}
	if checkSecurity {
		rules.Security.CheckTargetBlank = true
		rules.Security.CheckMixedContent = true
	}

	checkDuplicates, err := cmd.Flags().GetBool("check-duplicates")
	if err != nil {
		return err
	}
	if checkDuplicates {
		rules.ContentQuality.DetectDuplicateTitles = true
		rules.ContentQuality.DetectDuplicateDescriptions = true
		rules.ContentQuality.DetectDuplicateH1 = true
	}

	return nil
}

// runAudit executes the audit.
func runAudit(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	absDist, err := filepath.Abs(cfg.DistPath)
	if err != nil {
		return fmt.Errorf("resolve dist path: %w", err)
	}

	logger.Info("starting audit",
		"dist", absDist,
		"site", cfg.Site,
		"workers", cfg.Workers,
	)

	// Open the history database unless saving is disabled
	var db *database.AuditDB
	if !cfg.NoSave {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Debug("database opened", "dir", cfg.DBDir)
	}

	startTime := time.Now()

	index, err := discovery.Build(ctx, cfg.DistPath, cfg.Site, cfg.Rules.Policy(),
		discovery.WithInclude(cfg.Include),
		discovery.WithExclude(cfg.Exclude),
		discovery.WithIndexWorkers(cfg.Workers),
		discovery.WithIndexLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to index %s: %w", cfg.DistPath, err)
	}

	// The report identifies the site by its base URL when one is
	// configured, otherwise by the audited directory.
	site := cfg.Site
	if site == "" {
		site = absDist
	}
	auditReport := model.NewAuditReport(site, absDist)

	runner := checks.NewRunner(cfg.Rules,
		checks.WithLogger(logger),
		checks.WithMaxErrors(cfg.MaxErrors),
		checks.WithRunnerWorkers(cfg.Workers),
	)
	if err := runner.Run(ctx, index, auditReport); err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	logger.Info("audit completed",
		"pages", auditReport.PagesChecked,
		"findings", auditReport.TotalFindings(),
		"duration", time.Since(startTime).Round(time.Millisecond),
	)

	if err := outputReport(cfg, auditReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := saveAuditReport(ctx, db, auditReport, logger); err != nil {
		logger.Error("failed to save audit report", "error", err)
	}

	return exitStatus(cfg, auditReport)
}

// outputReport writes the audit report in the requested format.
func outputReport(cfg *config.Config, auditReport *model.AuditReport) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(auditReport)
	return err
}

// saveAuditReport saves the audit report to the database.
// If db is nil, this function is a no-op.
func saveAuditReport(ctx context.Context, db *database.AuditDB, auditReport *model.AuditReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	if err := db.SaveAuditReport(ctx, auditReport); err != nil {
		return fmt.Errorf("failed to save audit report: %w", err)
	}

	logger.Debug("audit report saved to database", "site", auditReport.Site)
	return nil
}

// exitStatus converts the report's severity counts into the command's
// final error. Errors always fail; warnings fail under --strict. The
// findings keep their own severities either way.
func exitStatus(cfg *config.Config, auditReport *model.AuditReport) error {
	errorCount := auditReport.Errors()
	warningCount := auditReport.Warnings()

	if errorCount > 0 {
		return fmt.Errorf("audit found %d error(s) and %d warning(s)", errorCount, warningCount)
	}
	if cfg.Strict && warningCount > 0 {
		return fmt.Errorf("audit found %d warning(s) (failing due to --strict)", warningCount)
	}
	return nil
}
