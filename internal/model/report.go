package model

import (
	"sort"
	"time"
)

// AuditReport is the complete result of one audit run.
//
// Design decision: We use a single struct holding all findings rather
// than streaming them, because the whole-site checks only complete after
// every page has been processed and the report boundary is where
// ordering is imposed.
type AuditReport struct {
	// Site identifies what was audited: the configured base URL if one
	// was given, otherwise the absolute dist path.
	Site string `json:"site"`

	// DistPath is the audited build-output directory.
	DistPath string `json:"dist_path"`

	// DateAudited is when the audit was performed.
	DateAudited time.Time `json:"date_audited"`

	// PagesChecked is the number of HTML pages that were indexed.
	PagesChecked int `json:"pages_checked"`

	// Findings contains every finding produced by the enabled checks.
	Findings []Finding `json:"findings,omitempty"`

	// PerformedChecks lists the check suites that actually ran.
	PerformedChecks []string `json:"performed_checks,omitempty"`

	// Truncated is true when the error budget stopped later suites.
	Truncated bool `json:"truncated"`

	// Error contains any fatal error that occurred during the audit.
	Error error `json:"-"` // Excluded from JSON

	// ErrorMessage is the string form of Error for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewAuditReport creates an empty report for the given site and dist path.
func NewAuditReport(site, distPath string) *AuditReport {
	return &AuditReport{
		Site:        site,
		DistPath:    distPath,
		DateAudited: time.Now(),
	}
}

// Add appends findings to the report.
func (r *AuditReport) Add(findings ...Finding) {
	r.Findings = append(r.Findings, findings...)
}

// Sort orders findings by file, then rule id, then selector.
// Checks may emit in any order; ordering is imposed once, here, at the
// reporting boundary.
func (r *AuditReport) Sort() {
	sort.SliceStable(r.Findings, func(i, j int) bool {
		a, b := r.Findings[i], r.Findings[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		return a.Selector < b.Selector
	})
}

// CountBySeverity returns the number of findings at the given level.
func (r *AuditReport) CountBySeverity(s Severity) int {
	count := 0
	for _, f := range r.Findings {
		if f.Severity == s {
			count++
		}
	}
	return count
}

// Errors returns the number of error-level findings.
func (r *AuditReport) Errors() int { return r.CountBySeverity(SeverityError) }

// Warnings returns the number of warning-level findings.
func (r *AuditReport) Warnings() int { return r.CountBySeverity(SeverityWarning) }

// Infos returns the number of info-level findings.
func (r *AuditReport) Infos() int { return r.CountBySeverity(SeverityInfo) }

// TotalFindings returns the total number of findings.
func (r *AuditReport) TotalFindings() int { return len(r.Findings) }

// HasFindings reports whether the audit produced any findings.
func (r *AuditReport) HasFindings() bool { return len(r.Findings) > 0 }

// FindingsBySeverity returns the findings at the given level, in report order.
func (r *AuditReport) FindingsBySeverity(s Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}

// FindingsByFile groups findings by file, preserving report order within
// each group. Keys returns file names sorted for deterministic iteration.
func (r *AuditReport) FindingsByFile() (map[string][]Finding, []string) {
	byFile := make(map[string][]Finding)
	for _, f := range r.Findings {
		byFile[f.File] = append(byFile[f.File], f)
	}
	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	sort.Strings(files)
	return byFile, files
}
