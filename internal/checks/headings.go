package checks

import (
	"context"
	"fmt"

	"github.com/distlint/distlint/internal/config"
	"github.com/distlint/distlint/internal/discovery"
	"github.com/distlint/distlint/internal/htmldoc"
	"github.com/distlint/distlint/internal/model"
)

// HeadingsCheck validates heading structure: presence of a single <h1>
// and, optionally, that no heading level is skipped.
type HeadingsCheck struct {
	workers int
}

// Name returns the suite name.
func (c *HeadingsCheck) Name() string { return "headings" }

// Enabled reports whether any heading sub-check is turned on.
func (c *HeadingsCheck) Enabled(rules *config.Rules) bool {
	h := rules.Headings
	return h.RequireH1 || h.SingleH1 || h.NoSkip
}

// Run checks every page concurrently.
func (c *HeadingsCheck) Run(ctx context.Context, index *discovery.SiteIndex, rules *config.Rules) []model.Finding {
	return forEachPage(ctx, index, c.workers, func(page *model.Page) []model.Finding {
		doc, err := htmldoc.Parse(page.Content)
		if err != nil {
			return nil
		}

		var findings []model.Finding

		h1Count := len(doc.Select("h1"))
		if rules.Headings.RequireH1 && h1Count == 0 {
			findings = append(findings, model.NewFinding(
				"headings/no-h1",
				page.RelPath,
				"body",
				"Page has no <h1> heading",
			))
		}
		if rules.Headings.SingleH1 && h1Count > 1 {
			findings = append(findings, model.NewFinding(
				"headings/multiple-h1",
				page.RelPath,
				"h1",
				fmt.Sprintf("Page has %d <h1> headings (expected 1)", h1Count),
			))
		}

		if rules.Headings.NoSkip {
			findings = append(findings, checkHeadingSkips(page, doc)...)
		}
		return findings
	})
}

// checkHeadingSkips walks headings in document order and flags any jump
// of more than one level, e.g. an <h4> directly after an <h2>.
func checkHeadingSkips(page *model.Page, doc *htmldoc.Document) []model.Finding {
	var levels []int
	doc.Walk(func(el htmldoc.Element) {
		switch el.Tag() {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			levels = append(levels, int(el.Tag()[1]-'0'))
		}
	})

	var findings []model.Finding
	for i := 1; i < len(levels); i++ {
		prev, curr := levels[i-1], levels[i]
		if curr > prev+1 {
			findings = append(findings, model.NewFinding(
				"headings/skip-level",
				page.RelPath,
				fmt.Sprintf("h%d", curr),
				fmt.Sprintf("Heading level skip: <h%d> follows <h%d> (missing <h%d>)", curr, prev, prev+1),
			))
		}
	}
	return findings
}
