package checks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/distlint/distlint/internal/config"
	"github.com/distlint/distlint/internal/discovery"
	"github.com/distlint/distlint/internal/htmldoc"
	"github.com/distlint/distlint/internal/model"
)

// StructuredDataCheck validates JSON-LD blocks: presence when required,
// and that every block parses as JSON.
type StructuredDataCheck struct {
	workers int
}

// Name returns the suite name.
func (c *StructuredDataCheck) Name() string { return "structured-data" }

// Enabled reports whether JSON-LD checking is turned on.
func (c *StructuredDataCheck) Enabled(rules *config.Rules) bool {
	return rules.StructuredData.CheckJSONLD || rules.StructuredData.RequireJSONLD
}

// Run checks every page concurrently.
func (c *StructuredDataCheck) Run(ctx context.Context, index *discovery.SiteIndex, rules *config.Rules) []model.Finding {
	return forEachPage(ctx, index, c.workers, func(page *model.Page) []model.Finding {
		doc, err := htmldoc.Parse(page.Content)
		if err != nil {
			return nil
		}

		scripts := doc.SelectAttrEqual("script", "type", "application/ld+json")

		if len(scripts) == 0 {
			if rules.StructuredData.RequireJSONLD {
				return []model.Finding{model.NewFinding(
					"structured-data/missing",
					page.RelPath,
					"head",
					"No JSON-LD structured data found",
				)}
			}
			return nil
		}

		if !rules.StructuredData.CheckJSONLD {
			return nil
		}

		var findings []model.Finding
		for i, script := range scripts {
			content := strings.TrimSpace(script.Text())
			if content == "" {
				findings = append(findings, model.NewFinding(
					"structured-data/empty",
					page.RelPath,
					fmt.Sprintf("script[type='application/ld+json']:nth(%d)", i+1),
					"JSON-LD script is empty",
				))
				continue
			}
			if !json.Valid([]byte(content)) {
				findings = append(findings, model.NewFinding(
					"structured-data/invalid-json",
					page.RelPath,
					fmt.Sprintf("script[type='application/ld+json']:nth(%d)", i+1),
					"Invalid JSON in JSON-LD block",
				))
			}
		}
		return findings
	})
}
