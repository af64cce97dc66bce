package checks

import (
	"context"
	"fmt"
	"strings"

	"github.com/distlint/distlint/internal/config"
	"github.com/distlint/distlint/internal/discovery"
	"github.com/distlint/distlint/internal/htmldoc"
	"github.com/distlint/distlint/internal/model"
)

// mixedContentAttrs maps embedding tags to the attribute carrying the
// resource URL.
var mixedContentAttrs = map[string]string{
	"img":    "src",
	"script": "src",
	"link":   "href",
	"source": "src",
	"video":  "src",
	"audio":  "src",
	"iframe": "src",
}

// SecurityCheck covers static security hygiene: target="_blank" links
// without noopener, http:// subresources, and inline scripts.
type SecurityCheck struct {
	workers int
}

// Name returns the suite name.
func (c *SecurityCheck) Name() string { return "security" }

// Enabled reports whether any security sub-check is turned on.
func (c *SecurityCheck) Enabled(rules *config.Rules) bool {
	s := rules.Security
	return s.CheckTargetBlank || s.CheckMixedContent || s.WarnInlineScripts
}

// Run checks every page concurrently.
func (c *SecurityCheck) Run(ctx context.Context, index *discovery.SiteIndex, rules *config.Rules) []model.Finding {
	return forEachPage(ctx, index, c.workers, func(page *model.Page) []model.Finding {
		doc, err := htmldoc.Parse(page.Content)
		if err != nil {
			return nil
		}

		var findings []model.Finding
		if rules.Security.CheckTargetBlank {
			findings = append(findings, checkTargetBlank(page, doc)...)
		}
		if rules.Security.CheckMixedContent {
			findings = append(findings, checkMixedContent(page, doc)...)
		}
		if rules.Security.WarnInlineScripts {
			findings = append(findings, checkInlineScripts(page, doc)...)
		}
		return findings
	})
}

func checkTargetBlank(page *model.Page, doc *htmldoc.Document) []model.Finding {
	var findings []model.Finding
	for _, link := range doc.SelectAttrEqual("a", "target", "_blank") {
		rel := link.Attr("rel")
		if strings.Contains(rel, "noopener") || strings.Contains(rel, "noreferrer") {
			continue
		}
		href := link.Attr("href")
		if href == "" {
			href = "(no href)"
		}
		findings = append(findings, model.NewFinding(
			"security/target-blank-noopener",
			page.RelPath,
			fmt.Sprintf("a[href='%s'][target='_blank']", href),
			fmt.Sprintf("Link with target=\"_blank\" missing rel=\"noopener\": '%s'", href),
		))
	}
	return findings
}

func checkMixedContent(page *model.Page, doc *htmldoc.Document) []model.Finding {
	var findings []model.Finding
	doc.Walk(func(el htmldoc.Element) {
		attr, ok := mixedContentAttrs[el.Tag()]
		if !ok {
			return
		}
		value := el.Attr(attr)
		if !strings.HasPrefix(value, "http://") {
			return
		}
		findings = append(findings, model.NewFinding(
			"security/mixed-content",
			page.RelPath,
			fmt.Sprintf("%s[%s='%s']", el.Tag(), attr, value),
			fmt.Sprintf("HTTP resource on potentially HTTPS page: '%s'", value),
		))
	})
	return findings
}

// checkInlineScripts counts script elements with a body. JSON payload
// scripts (JSON-LD, application/json) are data, not executable code,
// and don't affect a Content-Security-Policy.
func checkInlineScripts(page *model.Page, doc *htmldoc.Document) []model.Finding {
	count := 0
	for _, script := range doc.Select("script") {
		if script.HasAttr("src") {
			continue
		}
		switch strings.ToLower(script.Attr("type")) {
		case "application/ld+json", "application/json":
			continue
		}
		count++
	}
	if count == 0 {
		return nil
	}
	return []model.Finding{model.NewFinding(
		"security/inline-scripts",
		page.RelPath,
		"script",
		fmt.Sprintf("Found %d inline script(s) - may conflict with CSP", count),
	)}
}
