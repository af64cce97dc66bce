package checks

import (
	"context"
	"fmt"

	"github.com/distlint/distlint/internal/config"
	"github.com/distlint/distlint/internal/discovery"
	"github.com/distlint/distlint/internal/htmldoc"
	"github.com/distlint/distlint/internal/model"
)

// hreflangEntry is one <link rel="alternate" hreflang> declaration.
type hreflangEntry struct {
	lang string
	href string
}

// HreflangCheck validates hreflang alternate annotations: x-default
// presence, self-reference, and reciprocity between alternate pages.
//
// Self-reference and reciprocity compare absolute page URLs, so both
// are skipped when no base URL is configured; guessing the origin would
// only produce noise.
type HreflangCheck struct{}

// Name returns the suite name.
func (c *HreflangCheck) Name() string { return "hreflang" }

// Enabled reports whether hreflang checking is turned on.
func (c *HreflangCheck) Enabled(rules *config.Rules) bool {
	return rules.Hreflang.CheckHreflang
}

// Run walks the hreflang declarations of every page.
// The suite is sequential: the cross-page reciprocity check needs the
// complete declaration map before it can verify anything.
func (c *HreflangCheck) Run(_ context.Context, index *discovery.SiteIndex, rules *config.Rules) []model.Finding {
	var findings []model.Finding

	// Route -> declarations, and absolute URL -> page for reverse lookup.
	declarations := make(map[string][]hreflangEntry)
	byURL := make(map[string]*model.Page)
	for _, page := range index.Pages {
		if page.AbsoluteURL != "" {
			byURL[page.AbsoluteURL] = page
		}
	}

	for _, page := range index.Pages {
		entries := collectHreflang(page)
		if len(entries) == 0 {
			continue
		}
		declarations[page.Route] = entries

		if rules.Hreflang.RequireXDefault {
			hasXDefault := false
			for _, e := range entries {
				if e.lang == "x-default" {
					hasXDefault = true
					break
				}
			}
			if !hasXDefault {
				findings = append(findings, model.NewFinding(
					"hreflang/no-x-default",
					page.RelPath,
					"link[rel='alternate'][hreflang]",
					"Hreflang tags present but no x-default",
				))
			}
		}

		if rules.Hreflang.RequireSelfReference && page.AbsoluteURL != "" {
			hasSelf := false
			for _, e := range entries {
				if e.href == page.AbsoluteURL {
					hasSelf = true
					break
				}
			}
			if !hasSelf {
				findings = append(findings, model.NewFinding(
					"hreflang/no-self-reference",
					page.RelPath,
					"link[rel='alternate'][hreflang]",
					"Hreflang tags don't include a self-reference",
				))
			}
		}
	}

	if rules.Hreflang.RequireReciprocal {
		// Iterate pages, not the map, for deterministic finding order.
		for _, page := range index.Pages {
			entries, ok := declarations[page.Route]
			if !ok || page.AbsoluteURL == "" {
				continue
			}
			for _, e := range entries {
				if e.lang == "x-default" {
					continue
				}
				target, ok := byURL[e.href]
				if !ok {
					continue
				}
				targetEntries, ok := declarations[target.Route]
				if !ok {
					continue
				}
				reciprocal := false
				for _, te := range targetEntries {
					if te.href == page.AbsoluteURL {
						reciprocal = true
						break
					}
				}
				if !reciprocal {
					findings = append(findings, model.NewFinding(
						"hreflang/no-reciprocal",
						page.RelPath,
						fmt.Sprintf("link[hreflang='%s'][href='%s']", e.lang, e.href),
						fmt.Sprintf("Hreflang target '%s' (lang='%s') doesn't link back", e.href, e.lang),
					))
				}
			}
		}
	}

	return findings
}

// collectHreflang extracts the hreflang declarations from a page.
func collectHreflang(page *model.Page) []hreflangEntry {
	doc, err := htmldoc.Parse(page.Content)
	if err != nil {
		return nil
	}

	var entries []hreflangEntry
	for _, link := range doc.SelectAttrEqual("link", "rel", "alternate") {
		lang := link.Attr("hreflang")
		href := link.Attr("href")
		if lang == "" || href == "" {
			continue
		}
		entries = append(entries, hreflangEntry{lang: lang, href: href})
	}
	return entries
}
