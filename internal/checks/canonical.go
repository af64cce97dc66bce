package checks

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/distlint/distlint/internal/config"
	"github.com/distlint/distlint/internal/discovery"
	"github.com/distlint/distlint/internal/htmldoc"
	"github.com/distlint/distlint/internal/model"
	"github.com/distlint/distlint/internal/normalize"
)

// CanonicalCheck validates canonical link tags and the robots meta tag
// on every page.
type CanonicalCheck struct {
	workers int
}

// Name returns the suite name.
func (c *CanonicalCheck) Name() string { return "canonical" }

// Enabled always returns true; the robots meta half of the suite runs
// even when canonical tags are not required.
func (c *CanonicalCheck) Enabled(_ *config.Rules) bool { return true }

// Run checks every page concurrently.
func (c *CanonicalCheck) Run(ctx context.Context, index *discovery.SiteIndex, rules *config.Rules) []model.Finding {
	return forEachPage(ctx, index, c.workers, func(page *model.Page) []model.Finding {
		var findings []model.Finding
		if rules.Canonical.Require {
			findings = append(findings, c.checkCanonical(page, index, rules)...)
		}
		findings = append(findings, c.checkRobotsMeta(page, rules)...)
		return findings
	})
}

func (c *CanonicalCheck) checkCanonical(page *model.Page, index *discovery.SiteIndex, rules *config.Rules) []model.Finding {
	doc, err := htmldoc.Parse(page.Content)
	if err != nil {
		return nil
	}

	var findings []model.Finding

	canonicals := doc.SelectAttrEqual("link", "rel", "canonical")
	if len(canonicals) == 0 {
		return append(findings, model.NewFinding(
			"canonical/missing",
			page.RelPath,
			"head",
			"Missing canonical tag",
		))
	}

	if len(canonicals) > 1 {
		findings = append(findings, model.NewFinding(
			"canonical/multiple",
			page.RelPath,
			"link[rel='canonical']",
			fmt.Sprintf("Found %d canonical tags (expected exactly 1)", len(canonicals)),
		))
	}

	// Subsequent checks inspect the first tag, matching crawler behavior.
	href := canonicals[0].Attr("href")
	if strings.TrimSpace(href) == "" {
		return append(findings, model.NewFinding(
			"canonical/empty",
			page.RelPath,
			"link[rel='canonical']",
			"Canonical tag has empty href",
		))
	}

	parsed, parseErr := url.Parse(href)
	isAbsolute := parseErr == nil && parsed.IsAbs() && parsed.Host != ""

	if rules.Canonical.Absolute && !isAbsolute {
		return append(findings, model.NewFinding(
			"canonical/not-absolute",
			page.RelPath,
			fmt.Sprintf("link[rel='canonical'][href='%s']", href),
			"Canonical URL is not absolute",
		))
	}

	if rules.Canonical.SameOrigin && index.BaseURL != "" && isAbsolute {
		baseOrigin, baseOK := normalize.Origin(index.BaseURL)
		hrefOrigin, hrefOK := normalize.Origin(href)
		if baseOK && hrefOK && baseOrigin != hrefOrigin {
			findings = append(findings, model.NewFinding(
				"canonical/cross-origin",
				page.RelPath,
				fmt.Sprintf("link[rel='canonical'][href='%s']", href),
				fmt.Sprintf("Canonical URL points to different origin '%s' (expected '%s')", hrefOrigin, baseOrigin),
			))
		}
	}

	if rules.Canonical.SelfReference && page.AbsoluteURL != "" {
		normCanonical := normalize.URL(href, index.Policy)
		normPage := normalize.URL(page.AbsoluteURL, index.Policy)
		if normCanonical != normPage {
			findings = append(findings, model.NewFinding(
				"canonical/not-self",
				page.RelPath,
				fmt.Sprintf("link[rel='canonical'][href='%s']", href),
				fmt.Sprintf("Canonical URL '%s' does not match page URL '%s'", href, page.AbsoluteURL),
			))
		}
	}

	if isAbsolute {
		target := normalize.Path(parsed.Path, index.Policy)
		if !index.RouteExists(target) {
			findings = append(findings, model.NewFinding(
				"canonical/target-missing",
				page.RelPath,
				fmt.Sprintf("link[rel='canonical'][href='%s']", href),
				fmt.Sprintf("Canonical URL '%s' target route '%s' not found in dist", href, target),
			))
		}
	}

	return findings
}

func (c *CanonicalCheck) checkRobotsMeta(page *model.Page, rules *config.Rules) []model.Finding {
	if !page.Noindex {
		return nil
	}

	switch {
	case rules.RobotsMeta.FailIfNoindex:
		return []model.Finding{
			model.NewFinding(
				"robots/noindex",
				page.RelPath,
				"meta[name='robots']",
				"Page has noindex directive",
			).WithSeverity(model.SeverityError),
		}
	case !rules.RobotsMeta.AllowNoindex:
		return []model.Finding{
			model.NewFinding(
				"robots/noindex",
				page.RelPath,
				"meta[name='robots']",
				"Page has noindex directive",
			),
		}
	default:
		return nil
	}
}
