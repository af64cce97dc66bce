package checks

import (
	"context"
	"strings"

	"github.com/distlint/distlint/internal/config"
	"github.com/distlint/distlint/internal/discovery"
	"github.com/distlint/distlint/internal/htmldoc"
	"github.com/distlint/distlint/internal/model"
)

// OpenGraphCheck validates the social sharing metadata: og:title,
// og:description, og:image, and twitter:card.
type OpenGraphCheck struct {
	workers int
}

// Name returns the suite name.
func (c *OpenGraphCheck) Name() string { return "opengraph" }

// Enabled reports whether any Open Graph requirement is turned on.
func (c *OpenGraphCheck) Enabled(rules *config.Rules) bool {
	og := rules.OpenGraph
	return og.RequireOGTitle || og.RequireOGDescription || og.RequireOGImage || og.RequireTwitterCard
}

// Run checks every page concurrently.
func (c *OpenGraphCheck) Run(ctx context.Context, index *discovery.SiteIndex, rules *config.Rules) []model.Finding {
	return forEachPage(ctx, index, c.workers, func(page *model.Page) []model.Finding {
		doc, err := htmldoc.Parse(page.Content)
		if err != nil {
			return nil
		}

		var findings []model.Finding
		og := rules.OpenGraph

		if og.RequireOGTitle && !hasMetaContent(doc, "property", "og:title") {
			findings = append(findings, model.NewFinding(
				"opengraph/title-missing", page.RelPath, "head", "Missing og:title meta tag"))
		}
		if og.RequireOGDescription && !hasMetaContent(doc, "property", "og:description") {
			findings = append(findings, model.NewFinding(
				"opengraph/description-missing", page.RelPath, "head", "Missing og:description meta tag"))
		}
		if og.RequireOGImage && !hasMetaContent(doc, "property", "og:image") {
			findings = append(findings, model.NewFinding(
				"opengraph/image-missing", page.RelPath, "head", "Missing og:image meta tag"))
		}
		if og.RequireTwitterCard && !hasMetaContent(doc, "name", "twitter:card") {
			findings = append(findings, model.NewFinding(
				"opengraph/twitter-card-missing", page.RelPath, "head", "Missing twitter:card meta tag"))
		}
		return findings
	})
}

// hasMetaContent reports whether a meta tag with the given attribute
// value exists and carries non-empty content.
func hasMetaContent(doc *htmldoc.Document, attr, value string) bool {
	for _, meta := range doc.SelectAttrEqual("meta", attr, value) {
		if strings.TrimSpace(meta.Attr("content")) != "" {
			return true
		}
	}
	return false
}
