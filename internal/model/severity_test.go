package model

import "testing"

func TestSeverityString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityInfo, "INFO"},
		{SeverityWarning, "WARN"},
		{SeverityError, "ERROR"},
		{Severity(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.severity, got, tt.want)
		}
	}
}

func TestGetRuleInfo(t *testing.T) {
	t.Parallel()

	t.Run("known rule carries severity and guidance", func(t *testing.T) {
		t.Parallel()

		info := GetRuleInfo("links/broken")
		if info.Severity != SeverityError {
			t.Errorf("links/broken severity = %v, want error", info.Severity)
		}
		if info.Impact == "" || info.Recommendation == "" {
			t.Error("expected non-empty impact and recommendation")
		}
	})

	t.Run("severity tiers are stable", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			ruleID string
			want   Severity
		}{
			{"links/broken", SeverityError},
			{"html/viewport-missing", SeverityError},
			{"robots/noindex", SeverityWarning},
			{"html/title-too-long", SeverityWarning},
			{"a11y/generic-link-text", SeverityInfo},
			{"security/inline-scripts", SeverityInfo},
		}
		for _, tt := range tests {
			if got := GetSeverity(tt.ruleID); got != tt.want {
				t.Errorf("GetSeverity(%s) = %v, want %v", tt.ruleID, got, tt.want)
			}
		}
	})

	t.Run("unknown rule defaults to info", func(t *testing.T) {
		t.Parallel()

		info := GetRuleInfo("no-such/rule")
		if info.Severity != SeverityInfo {
			t.Errorf("unknown rule severity = %v, want info", info.Severity)
		}
	})
}

func TestRuleInfoMappingComplete(t *testing.T) {
	t.Parallel()

	// Every rule in the mapping must carry guidance; a bare severity
	// produces findings the report cannot explain.
	for _, ruleID := range KnownRules() {
		info := GetRuleInfo(ruleID)
		if info.Impact == "" {
			t.Errorf("rule %s has no impact text", ruleID)
		}
		if info.Recommendation == "" {
			t.Errorf("rule %s has no recommendation", ruleID)
		}
	}
}
