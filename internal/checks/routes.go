package checks

import (
	"context"
	"fmt"

	"github.com/distlint/distlint/internal/config"
	"github.com/distlint/distlint/internal/discovery"
	"github.com/distlint/distlint/internal/model"
)

// RoutesCheck reports route collisions recorded during index construction.
// A collision means two output files normalize to the same route; the
// index kept the first file in sorted order and this check surfaces the
// loser as a finding on its own file.
type RoutesCheck struct{}

// Name returns the suite name.
func (c *RoutesCheck) Name() string { return "routes" }

// Enabled always returns true: a route collision is a defect in the
// build output regardless of configuration.
func (c *RoutesCheck) Enabled(_ *config.Rules) bool { return true }

// Run converts the index's recorded collisions into findings.
func (c *RoutesCheck) Run(_ context.Context, index *discovery.SiteIndex, _ *config.Rules) []model.Finding {
	findings := make([]model.Finding, 0, len(index.Collisions))
	for _, col := range index.Collisions {
		findings = append(findings, model.NewFinding(
			"routes/duplicate-route",
			col.RelPath,
			"",
			fmt.Sprintf("File normalizes to route '%s' already owned by '%s'", col.Route, col.OwnerRelPath),
		))
	}
	return findings
}
