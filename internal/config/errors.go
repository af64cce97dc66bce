package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and Rules.Validate()
// and provide specific information about what is wrong.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoDistPath is returned when no build output directory is specified.
	ErrNoDistPath = errors.New("no dist directory specified: pass the build output path as an argument")

	// ErrInvalidWorkers is returned when the worker count is negative.
	// Use 0 to fall back to the default pool size.
	ErrInvalidWorkers = errors.New("invalid workers: must be non-negative")

	// ErrInvalidMaxErrors is returned when the error budget is negative.
	// Use 0 for an unlimited budget.
	ErrInvalidMaxErrors = errors.New("invalid max errors: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidTrailingSlash is returned when the rules file contains an
	// unknown trailing_slash value. Valid values: always, never, ignore.
	ErrInvalidTrailingSlash = errors.New("invalid trailing_slash: must be always, never, or ignore")

	// ErrInvalidIndexHTML is returned when the rules file contains an
	// unknown index_html value. Valid values: forbid, allow.
	ErrInvalidIndexHTML = errors.New("invalid index_html: must be forbid or allow")

	// ErrInvalidBaseURL is returned when the configured site base URL
	// cannot be parsed as an absolute URL with a host.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be absolute, e.g. https://example.com")
)
