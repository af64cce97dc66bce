package checks

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/distlint/distlint/internal/config"
	"github.com/distlint/distlint/internal/discovery"
	"github.com/distlint/distlint/internal/model"
)

// RobotsTxtCheck validates the presence and content of robots.txt.
type RobotsTxtCheck struct{}

// Name returns the suite name.
func (c *RobotsTxtCheck) Name() string { return "robots-txt" }

// Enabled reports whether any robots.txt sub-check is turned on.
func (c *RobotsTxtCheck) Enabled(rules *config.Rules) bool {
	return rules.RobotsTxt.Require || rules.RobotsTxt.RequireSitemapLink
}

// Run checks robots.txt in the dist root.
func (c *RobotsTxtCheck) Run(_ context.Context, index *discovery.SiteIndex, rules *config.Rules) []model.Finding {
	robotsPath := filepath.Join(index.DistPath, "robots.txt")

	data, err := os.ReadFile(robotsPath) //nolint:gosec // Path is inside the audited dist directory
	if err != nil {
		if rules.RobotsTxt.Require {
			return []model.Finding{model.NewFinding(
				"robots-txt/missing",
				"robots.txt",
				"",
				"robots.txt not found in dist directory",
			)}
		}
		return nil
	}

	if !rules.RobotsTxt.RequireSitemapLink {
		return nil
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "sitemap:") {
			return nil
		}
	}
	return []model.Finding{model.NewFinding(
		"robots-txt/no-sitemap",
		"robots.txt",
		"",
		"robots.txt does not contain a Sitemap directive",
	)}
}
