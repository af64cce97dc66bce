package checks

import (
	"context"
	"fmt"
	"strings"

	"github.com/distlint/distlint/internal/config"
	"github.com/distlint/distlint/internal/discovery"
	"github.com/distlint/distlint/internal/htmldoc"
	"github.com/distlint/distlint/internal/model"
	"github.com/distlint/distlint/internal/normalize"
)

// LinksCheck validates every internal <a href> against the site index:
// resolution to an existing route, fragment targets, query parameters,
// and http:// downgrades.
type LinksCheck struct {
	workers int
}

// Name returns the suite name.
func (c *LinksCheck) Name() string { return "links" }

// Enabled reports whether internal link checking is turned on.
func (c *LinksCheck) Enabled(rules *config.Rules) bool {
	return rules.Links.CheckInternal
}

// Run checks the internal links of every page concurrently.
func (c *LinksCheck) Run(ctx context.Context, index *discovery.SiteIndex, rules *config.Rules) []model.Finding {
	return forEachPage(ctx, index, c.workers, func(page *model.Page) []model.Finding {
		return c.checkPage(page, index, rules)
	})
}

func (c *LinksCheck) checkPage(page *model.Page, index *discovery.SiteIndex, rules *config.Rules) []model.Finding {
	doc, err := htmldoc.Parse(page.Content)
	if err != nil {
		return nil
	}

	var findings []model.Finding

	// Collect this page's ids once for same-page fragment checks.
	var pageIDs map[string]struct{}
	if rules.Links.CheckFragments {
		pageIDs = doc.IDs()
	}

	for _, link := range doc.SelectWithAttr("a", "href") {
		href := link.Attr("href")

		if !normalize.IsInternal(href, index.BaseURL) {
			continue
		}
		if normalize.SkipScheme(href) {
			continue
		}

		// Fragment-only links point at the page itself.
		if strings.HasPrefix(href, "#") {
			fragment := strings.TrimPrefix(href, "#")
			if rules.Links.CheckFragments && fragment != "" {
				if _, ok := pageIDs[fragment]; !ok {
					findings = append(findings, model.NewFinding(
						"links/broken-fragment",
						page.RelPath,
						fmt.Sprintf("a[href='%s']", href),
						fmt.Sprintf("Fragment target '%s' not found on this page", fragment),
					))
				}
			}
			continue
		}

		if rules.Links.ForbidQueryParamsInternal && normalize.HasQueryParams(href) {
			findings = append(findings, model.NewFinding(
				"links/query-params",
				page.RelPath,
				fmt.Sprintf("a[href='%s']", href),
				fmt.Sprintf("Internal link contains query parameters: '%s'", href),
			))
		}

		if rules.Links.CheckMixedContent && strings.HasPrefix(href, "http://") {
			findings = append(findings, model.NewFinding(
				"links/mixed-content",
				page.RelPath,
				fmt.Sprintf("a[href='%s']", href),
				fmt.Sprintf("Internal link uses HTTP instead of HTTPS: '%s'", href),
			))
		}

		resolved, ok := normalize.ResolveHref(href, page.Route, index.BaseURL)
		if !ok {
			continue
		}
		route := normalize.Path(resolved, index.Policy)

		if !index.RouteExists(route) {
			// Not a page route; it may still be a plain file in dist
			// (e.g. a PDF or a feed linked from navigation).
			if !index.FileExists(strings.TrimPrefix(resolved, "/")) {
				finding := model.NewFinding(
					"links/broken",
					page.RelPath,
					fmt.Sprintf("a[href='%s']", href),
					fmt.Sprintf("Broken internal link '%s' -> '%s' (not found in dist)", href, route),
				)
				if !rules.Links.FailOnBroken {
					finding = finding.WithSeverity(model.SeverityWarning)
				}
				findings = append(findings, finding)
			}
		}

		// Fragment on a cross-page link: the target page must carry the id.
		if rules.Links.CheckFragments {
			if fragment, ok := normalize.Fragment(href); ok && fragment != "" {
				if target, ok := index.PageFor(route); ok {
					targetDoc, err := htmldoc.Parse(target.Content)
					if err == nil && !targetDoc.HasID(fragment) {
						findings = append(findings, model.NewFinding(
							"links/broken-fragment",
							page.RelPath,
							fmt.Sprintf("a[href='%s']", href),
							fmt.Sprintf("Fragment '%s' not found on target page '%s'", fragment, route),
						))
					}
				}
			}
		}
	}

	return findings
}
