package checks

import (
	"context"
	"fmt"
	"net/url"

	"github.com/distlint/distlint/internal/config"
	"github.com/distlint/distlint/internal/discovery"
	"github.com/distlint/distlint/internal/model"
	"github.com/distlint/distlint/internal/normalize"
)

// SitemapCheck validates sitemap.xml against the page set: canonical
// URLs should be listed, listed URLs should exist in dist, and listed
// URLs should match the target page's canonical.
type SitemapCheck struct{}

// Name returns the suite name.
func (c *SitemapCheck) Name() string { return "sitemap" }

// Enabled always returns true; individual sub-checks honor the rules.
func (c *SitemapCheck) Enabled(rules *config.Rules) bool {
	s := rules.Sitemap
	return s.Require || s.CanonicalMustBeInSitemap || s.ForbidNoncanonicalEntries || s.EntriesMustExistInDist
}

// Run validates the sitemap. Sitemap comparisons are done on normalized
// URLs so that trailing-slash differences between the generator and the
// canonical tags do not produce false positives.
func (c *SitemapCheck) Run(_ context.Context, index *discovery.SiteIndex, rules *config.Rules) []model.Finding {
	var findings []model.Finding

	if !index.HasSitemap {
		if rules.Sitemap.Require {
			findings = append(findings, model.NewFinding(
				"sitemap/missing",
				"sitemap.xml",
				"",
				"sitemap.xml not found in dist directory",
			))
		}
		return findings
	}

	if len(index.SitemapURLs) == 0 {
		return findings
	}

	if rules.Sitemap.CanonicalMustBeInSitemap {
		normalizedSitemap := make(map[string]struct{}, len(index.SitemapURLs))
		for raw := range index.SitemapURLs {
			normalizedSitemap[normalize.URL(raw, index.Policy)] = struct{}{}
		}

		for _, page := range index.Pages {
			// Noindex pages shouldn't be in the sitemap at all.
			if page.Noindex || page.Canonical == "" {
				continue
			}
			normCanonical := normalize.URL(page.Canonical, index.Policy)
			if _, ok := normalizedSitemap[normCanonical]; !ok {
				findings = append(findings, model.NewFinding(
					"sitemap/canonical-missing",
					page.RelPath,
					fmt.Sprintf("link[rel='canonical'][href='%s']", page.Canonical),
					fmt.Sprintf("Canonical URL '%s' is not listed in sitemap.xml", page.Canonical),
				))
			}
		}
	}

	if rules.Sitemap.EntriesMustExistInDist {
		for raw := range index.SitemapURLs {
			parsed, err := url.Parse(raw)
			if err != nil || !parsed.IsAbs() {
				continue
			}
			route := normalize.Path(parsed.Path, index.Policy)
			if !index.RouteExists(route) {
				findings = append(findings, model.NewFinding(
					"sitemap/entry-not-in-dist",
					"sitemap.xml",
					fmt.Sprintf("<loc>%s</loc>", raw),
					fmt.Sprintf("Sitemap entry '%s' (route '%s') not found in dist", raw, route),
				))
			}
		}
	}

	if rules.Sitemap.ForbidNoncanonicalEntries {
		for raw := range index.SitemapURLs {
			parsed, err := url.Parse(raw)
			if err != nil || !parsed.IsAbs() {
				continue
			}
			route := normalize.Path(parsed.Path, index.Policy)
			page, ok := index.PageFor(route)
			if !ok || page.Canonical == "" {
				continue
			}
			if page.Canonical != raw {
				findings = append(findings, model.NewFinding(
					"sitemap/non-canonical-entry",
					"sitemap.xml",
					fmt.Sprintf("<loc>%s</loc>", raw),
					fmt.Sprintf("Sitemap contains '%s' but page canonical is '%s'", raw, page.Canonical),
				))
			}
		}
	}

	return findings
}
