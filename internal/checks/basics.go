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

// HTMLBasicsCheck covers per-page HTML hygiene: the document language,
// title, meta description, and viewport tags.
type HTMLBasicsCheck struct {
	workers int
}

// Name returns the suite name.
func (c *HTMLBasicsCheck) Name() string { return "html-basics" }

// Enabled reports whether any of the sub-checks is turned on.
func (c *HTMLBasicsCheck) Enabled(rules *config.Rules) bool {
	hb := rules.HTMLBasics
	return hb.LangAttrRequired || hb.TitleRequired || hb.MetaDescriptionRequired || hb.ViewportRequired
}

// Run checks every page concurrently.
func (c *HTMLBasicsCheck) Run(ctx context.Context, index *discovery.SiteIndex, rules *config.Rules) []model.Finding {
	return forEachPage(ctx, index, c.workers, func(page *model.Page) []model.Finding {
		doc, err := htmldoc.Parse(page.Content)
		if err != nil {
			return nil
		}

		var findings []model.Finding
		if rules.HTMLBasics.LangAttrRequired {
			findings = append(findings, checkLang(page, doc)...)
		}
		if rules.HTMLBasics.TitleRequired {
			findings = append(findings, checkTitle(page, doc, rules)...)
		}
		if rules.HTMLBasics.MetaDescriptionRequired {
			findings = append(findings, checkMetaDescription(page, doc, rules)...)
		}
		if rules.HTMLBasics.ViewportRequired {
			findings = append(findings, checkViewport(page, doc)...)
		}
		return findings
	})
}

func checkLang(page *model.Page, doc *htmldoc.Document) []model.Finding {
	for _, el := range doc.Select("html") {
		if strings.TrimSpace(el.Attr("lang")) != "" {
			return nil
		}
	}
	return []model.Finding{model.NewFinding(
		"html/lang-missing",
		page.RelPath,
		"html",
		"Missing lang attribute on <html> element",
	)}
}

func checkTitle(page *model.Page, doc *htmldoc.Document, rules *config.Rules) []model.Finding {
	titles := doc.Select("title")
	if len(titles) == 0 {
		return []model.Finding{model.NewFinding(
			"html/title-missing",
			page.RelPath,
			"head",
			"Missing <title> tag",
		)}
	}

	text := strings.TrimSpace(titles[0].Text())
	if text == "" {
		return []model.Finding{model.NewFinding(
			"html/title-empty",
			page.RelPath,
			"title",
			"Title tag is empty",
		)}
	}
	if max := rules.HTMLBasics.TitleMaxLength; max > 0 && len(text) > max {
		return []model.Finding{model.NewFinding(
			"html/title-too-long",
			page.RelPath,
			"title",
			fmt.Sprintf("Title is %d chars (recommended max: %d)", len(text), max),
		)}
	}
	return nil
}

func checkMetaDescription(page *model.Page, doc *htmldoc.Document, rules *config.Rules) []model.Finding {
	descriptions := doc.SelectAttrEqual("meta", "name", "description")
	if len(descriptions) == 0 {
		return []model.Finding{model.NewFinding(
			"html/meta-description-missing",
			page.RelPath,
			"head",
			"Missing or empty meta description",
		)}
	}

	content := strings.TrimSpace(descriptions[0].Attr("content"))
	if content == "" {
		return []model.Finding{model.NewFinding(
			"html/meta-description-missing",
			page.RelPath,
			"head",
			"Missing or empty meta description",
		)}
	}
	if max := rules.HTMLBasics.MetaDescriptionMaxLength; max > 0 && len(content) > max {
		return []model.Finding{model.NewFinding(
			"html/meta-description-too-long",
			page.RelPath,
			"meta[name='description']",
			fmt.Sprintf("Meta description is %d chars (recommended max: %d)", len(content), max),
		)}
	}
	return nil
}

func checkViewport(page *model.Page, doc *htmldoc.Document) []model.Finding {
	if len(doc.SelectAttrEqual("meta", "name", "viewport")) > 0 {
		return nil
	}
	return []model.Finding{model.NewFinding(
		"html/viewport-missing",
		page.RelPath,
		"head",
		"Missing viewport meta tag",
	)}
}
