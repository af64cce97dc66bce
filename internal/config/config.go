package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These are chosen to give useful output on a typical static-site build
// directory without any configuration at all.
const (
	// DefaultWorkers is the number of pages audited concurrently.
	// Audits are I/O bound (reading files from disk) with a CPU-bound
	// parse step, so a small fixed pool keeps throughput high without
	// exhausting file descriptors on large sites.
	DefaultWorkers = 8

	// DefaultMaxErrors is the error budget for a single audit run.
	// Once the number of error-severity findings crosses this value the
	// run stops between check suites and the report is marked truncated.
	// A value of 0 means no limit.
	DefaultMaxErrors = 0

	// AppName is the application name used for XDG directory paths.
	AppName = "distlint"

	// DefaultTitleMaxLength is the recommended maximum <title> length.
	// Search engines truncate titles around this point.
	DefaultTitleMaxLength = 60

	// DefaultDescriptionMaxLength is the recommended maximum length for
	// the meta description. Longer descriptions are truncated in search
	// result snippets.
	DefaultDescriptionMaxLength = 160
)

// Config holds all configuration options for distlint.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., AuditConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
// Check-suite tuning lives in the separate Rules struct loaded from the
// rules file, because that surface is large and naturally hierarchical.
type Config struct {
	// DistPath is the build output directory to audit.
	// This is the positional argument of the audit command.
	DistPath string

	// Site is the canonical base URL of the deployed site, e.g.
	// "https://example.com". When set, absolute internal URLs can be
	// resolved to routes and origin-sensitive checks (canonical
	// same-origin, hreflang reciprocity) are enabled.
	// When empty, those checks are skipped rather than guessed at.
	Site string

	// Workers is the number of concurrent page workers.
	// A value of 0 means use DefaultWorkers.
	Workers int

	// Strict promotes warning-severity findings to errors for the
	// purpose of the process exit code. The findings themselves keep
	// their original severity in the report.
	Strict bool

	// MaxErrors is the error budget; see DefaultMaxErrors.
	MaxErrors int

	// Include is the set of glob patterns selecting files under
	// DistPath to audit. Empty means audit every HTML file.
	Include []string

	// Exclude is the set of glob patterns removing files from the
	// audit after Include has been applied.
	Exclude []string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. When true, outputs GitHub Flavored Markdown
	// with tables, alerts, and pie charts.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// RulesFilePath is the path to the rules file.
	// If empty, the tool searches for .distlint.yml in the current
	// directory and then in the user's home directory.
	RulesFilePath string

	// Rules holds the check-suite tuning loaded from the rules file,
	// or the defaults when no rules file exists.
	Rules *Rules

	// DBDir is the directory path for storing the SQLite database.
	// Audit results are saved there for historical comparison via the
	// compare command. Defaults to the XDG data directory.
	DBDir string

	// NoSave disables persisting the audit result to the database.
	NoSave bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero (worker count, rules)
// and this also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Workers:   DefaultWorkers,
		MaxErrors: DefaultMaxErrors,
		Rules:     DefaultRules(),
		DBDir:     XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for distlint.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/distlint
// On macOS: ~/Library/Application Support/distlint
// On Windows: %LOCALAPPDATA%\distlint
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for distlint.
// On Linux: ~/.config/distlint
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a sentinel error describing the first problem found,
// or nil when the configuration can be used as-is.
func (c *Config) Validate() error {
	if c.DistPath == "" {
		return ErrNoDistPath
	}
	if c.Workers < 0 {
		return ErrInvalidWorkers
	}
	if c.MaxErrors < 0 {
		return ErrInvalidMaxErrors
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.Rules != nil {
		if err := c.Rules.Validate(); err != nil {
			return err
		}
	}
	return nil
}
