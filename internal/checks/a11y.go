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

// genericLinkTexts are link texts that convey nothing out of context
// (lowercase, trimmed). English and German, matching the audiences the
// tool was built for.
var genericLinkTexts = map[string]struct{}{
	// English
	"click here": {},
	"read more":  {},
	"learn more": {},
	"more":       {},
	"here":       {},
	"details":    {},
	// German
	"hier":    {},
	"mehr":    {},
	"weiter":  {},
	"klick":   {},
	"link":    {},
	"ansehen": {},
}

// A11yCheck covers static accessibility rules: image alt text,
// accessible names on links and buttons, form labels, and aria-hidden
// on focusable elements.
type A11yCheck struct {
	workers int
}

// Name returns the suite name.
func (c *A11yCheck) Name() string { return "a11y" }

// Enabled reports whether any accessibility sub-check is turned on.
func (c *A11yCheck) Enabled(rules *config.Rules) bool {
	a := rules.A11y
	return a.ImgAltRequired || a.LinkNameRequired || a.ButtonNameRequired ||
		a.LabelForRequired || a.AriaHiddenFocusableScan
}

// Run checks every page concurrently.
func (c *A11yCheck) Run(ctx context.Context, index *discovery.SiteIndex, rules *config.Rules) []model.Finding {
	return forEachPage(ctx, index, c.workers, func(page *model.Page) []model.Finding {
		doc, err := htmldoc.Parse(page.Content)
		if err != nil {
			return nil
		}

		var findings []model.Finding
		if rules.A11y.ImgAltRequired {
			findings = append(findings, checkImgAlt(page, doc, rules)...)
		}
		if rules.A11y.LinkNameRequired {
			findings = append(findings, checkLinkNames(page, doc, rules)...)
		}
		if rules.A11y.ButtonNameRequired {
			findings = append(findings, checkButtonNames(page, doc)...)
		}
		if rules.A11y.LabelForRequired {
			findings = append(findings, checkFormLabels(page, doc)...)
		}
		if rules.A11y.AriaHiddenFocusableScan {
			findings = append(findings, checkAriaHiddenFocusable(page, doc)...)
		}
		return findings
	})
}

func checkImgAlt(page *model.Page, doc *htmldoc.Document, rules *config.Rules) []model.Finding {
	var findings []model.Finding
	for _, img := range doc.Select("img") {
		if rules.A11y.AllowDecorativeImages {
			if role := img.Attr("role"); role == "presentation" || role == "none" {
				continue
			}
			if img.Attr("aria-hidden") == "true" {
				continue
			}
		}
		if !img.HasAttr("alt") {
			src := img.Attr("src")
			if src == "" {
				src = "(unknown)"
			}
			findings = append(findings, model.NewFinding(
				"a11y/img-alt",
				page.RelPath,
				fmt.Sprintf("img[src='%s']", src),
				fmt.Sprintf("Image missing alt attribute: src='%s'", src),
			))
		}
	}
	return findings
}

func checkLinkNames(page *model.Page, doc *htmldoc.Document, rules *config.Rules) []model.Finding {
	var findings []model.Finding
	for _, link := range doc.Select("a") {
		hasAriaLabel := strings.TrimSpace(link.Attr("aria-label")) != ""
		hasAriaLabelledby := strings.TrimSpace(link.Attr("aria-labelledby")) != ""
		text := link.Text()
		hasText := strings.TrimSpace(text) != ""

		// An image with meaningful alt text names the link too.
		hasImgAlt := false
		link.Children(func(el htmldoc.Element) {
			if el.Tag() == "img" && strings.TrimSpace(el.Attr("alt")) != "" {
				hasImgAlt = true
			}
		})

		if !hasAriaLabel && !hasAriaLabelledby && !hasText && !hasImgAlt {
			href := link.Attr("href")
			if href == "" {
				href = "(no href)"
			}
			findings = append(findings, model.NewFinding(
				"a11y/link-name",
				page.RelPath,
				fmt.Sprintf("a[href='%s']", href),
				fmt.Sprintf("Link has no accessible name: href='%s'", href),
			))
			continue
		}

		if rules.A11y.WarnGenericLinkText && hasText && !hasAriaLabel {
			normalized := strings.ToLower(strings.TrimSpace(text))
			if _, generic := genericLinkTexts[normalized]; generic {
				href := link.Attr("href")
				if href == "" {
					href = "(no href)"
				}
				findings = append(findings, model.NewFinding(
					"a11y/generic-link-text",
					page.RelPath,
					fmt.Sprintf("a[href='%s']", href),
					fmt.Sprintf("Link has generic text '%s' - not descriptive for screen readers", strings.TrimSpace(text)),
				))
			}
		}
	}
	return findings
}

func checkButtonNames(page *model.Page, doc *htmldoc.Document) []model.Finding {
	var findings []model.Finding
	for _, button := range doc.Select("button") {
		hasAriaLabel := strings.TrimSpace(button.Attr("aria-label")) != ""
		hasAriaLabelledby := strings.TrimSpace(button.Attr("aria-labelledby")) != ""
		hasText := strings.TrimSpace(button.Text()) != ""

		if !hasAriaLabel && !hasAriaLabelledby && !hasText {
			findings = append(findings, model.NewFinding(
				"a11y/button-name",
				page.RelPath,
				"button",
				"Button has no accessible name",
			))
		}
	}
	return findings
}

// unlabeledInputTypes are input types that need no visible label.
var unlabeledInputTypes = map[string]struct{}{
	"hidden": {},
	"submit": {},
	"button": {},
	"reset":  {},
	"image":  {},
}

func checkFormLabels(page *model.Page, doc *htmldoc.Document) []model.Finding {
	// Collect all label[for] targets first.
	labelFors := make(map[string]struct{})
	for _, label := range doc.SelectWithAttr("label", "for") {
		labelFors[label.Attr("for")] = struct{}{}
	}

	var controls []htmldoc.Element
	doc.Walk(func(el htmldoc.Element) {
		switch el.Tag() {
		case "input":
			if _, skip := unlabeledInputTypes[strings.ToLower(el.Attr("type"))]; !skip {
				controls = append(controls, el)
			}
		case "select", "textarea":
			controls = append(controls, el)
		}
	})

	var findings []model.Finding
	for _, control := range controls {
		hasAriaLabel := strings.TrimSpace(control.Attr("aria-label")) != ""
		hasAriaLabelledby := strings.TrimSpace(control.Attr("aria-labelledby")) != ""
		id := control.Attr("id")
		_, hasLabel := labelFors[id]
		hasLabel = hasLabel && id != ""

		if !hasAriaLabel && !hasAriaLabelledby && !hasLabel {
			inputType := control.Attr("type")
			if inputType == "" {
				inputType = "text"
			}
			name := control.Attr("name")
			if name == "" {
				name = "(unnamed)"
			}
			findings = append(findings, model.NewFinding(
				"a11y/form-label",
				page.RelPath,
				fmt.Sprintf("input[type='%s'][name='%s']", inputType, name),
				fmt.Sprintf("Form control '%s' (type='%s') has no associated label", name, inputType),
			))
		}
	}
	return findings
}

// focusableTags are elements focusable by default.
var focusableTags = map[string]struct{}{
	"a":        {},
	"button":   {},
	"input":    {},
	"select":   {},
	"textarea": {},
}

func checkAriaHiddenFocusable(page *model.Page, doc *htmldoc.Document) []model.Finding {
	var findings []model.Finding
	doc.Walk(func(el htmldoc.Element) {
		if el.Attr("aria-hidden") != "true" {
			return
		}
		_, focusable := focusableTags[el.Tag()]
		if tabindex := el.Attr("tabindex"); el.HasAttr("tabindex") && tabindex != "-1" {
			focusable = true
		}
		if focusable {
			findings = append(findings, model.NewFinding(
				"a11y/aria-hidden-focusable",
				page.RelPath,
				fmt.Sprintf("%s[aria-hidden='true']", el.Tag()),
				fmt.Sprintf("Focusable element <%s> has aria-hidden=\"true\"", el.Tag()),
			))
		}
	})
	return findings
}
