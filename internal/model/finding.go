package model

// Finding represents a single audit finding attached to a file in the
// build output.
type Finding struct {
	// RuleID identifies the rule that produced this finding.
	// This maps to ruleInfoMapping in severity.go.
	RuleID string `json:"rule_id"`

	// Severity is the level of the finding.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severity_text"`

	// File is the offending file's path relative to the dist root.
	// For site-wide findings this is the conventional file name
	// (e.g. "sitemap.xml", "robots.txt").
	File string `json:"file"`

	// Selector is a CSS-selector-like locator for the offending element,
	// empty when the finding applies to the whole file.
	Selector string `json:"selector,omitempty"`

	// Message describes the specific problem found.
	Message string `json:"message"`

	// Impact explains why this finding matters.
	Impact string `json:"impact,omitempty"`

	// Recommendation provides guidance on how to address the finding.
	Recommendation string `json:"recommendation,omitempty"`
}

// NewFinding creates a Finding for the given rule, resolving severity,
// impact, and recommendation from the central rule mapping.
func NewFinding(ruleID, file, selector, message string) Finding {
	info := GetRuleInfo(ruleID)
	return Finding{
		RuleID:         ruleID,
		Severity:       info.Severity,
		SeverityText:   info.Severity.String(),
		File:           file,
		Selector:       selector,
		Message:        message,
		Impact:         info.Impact,
		Recommendation: info.Recommendation,
	}
}

// WithSeverity returns a copy of the finding with an overridden severity.
// Used where a rule's level depends on configuration (e.g. links/broken
// downgraded to a warning when fail_on_broken is disabled).
func (f Finding) WithSeverity(s Severity) Finding {
	f.Severity = s
	f.SeverityText = s.String()
	return f
}

// Key returns a stable identity for the finding, used by the compare
// command to match findings across audit runs. The message is excluded
// because it may embed run-dependent detail (counts, resolved routes).
func (f Finding) Key() string {
	return f.RuleID + "\x00" + f.File + "\x00" + f.Selector
}
