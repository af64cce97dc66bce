package checks

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/distlint/distlint/internal/config"
	"github.com/distlint/distlint/internal/discovery"
	"github.com/distlint/distlint/internal/htmldoc"
	"github.com/distlint/distlint/internal/model"
)

// ContentQualityCheck detects duplicated content across pages: shared
// titles, meta descriptions, H1 headings, and byte-identical documents.
//
// The suite is sequential because it is one big cross-page aggregation;
// the per-page work is just a parse and a few lookups.
type ContentQualityCheck struct{}

// Name returns the suite name.
func (c *ContentQualityCheck) Name() string { return "content-quality" }

// Enabled reports whether any duplicate detection is turned on.
func (c *ContentQualityCheck) Enabled(rules *config.Rules) bool {
	cq := rules.ContentQuality
	return cq.DetectDuplicateTitles || cq.DetectDuplicateDescriptions ||
		cq.DetectDuplicateH1 || cq.DetectDuplicatePages
}

// Run aggregates values across all pages and reports each duplicate
// once per affected file, so JSON consumers can group by file cleanly.
func (c *ContentQualityCheck) Run(_ context.Context, index *discovery.SiteIndex, rules *config.Rules) []model.Finding {
	cq := rules.ContentQuality

	titles := make(map[string][]string)
	descriptions := make(map[string][]string)
	h1s := make(map[string][]string)
	contentHashes := make(map[[32]byte][]string)

	for _, page := range index.Pages {
		doc, err := htmldoc.Parse(page.Content)
		if err != nil {
			continue
		}

		if cq.DetectDuplicateTitles {
			if els := doc.Select("title"); len(els) > 0 {
				if text := strings.TrimSpace(els[0].Text()); text != "" {
					titles[text] = append(titles[text], page.RelPath)
				}
			}
		}
		if cq.DetectDuplicateDescriptions {
			if els := doc.SelectAttrEqual("meta", "name", "description"); len(els) > 0 {
				if content := strings.TrimSpace(els[0].Attr("content")); content != "" {
					descriptions[content] = append(descriptions[content], page.RelPath)
				}
			}
		}
		if cq.DetectDuplicateH1 {
			if els := doc.Select("h1"); len(els) > 0 {
				if text := strings.TrimSpace(els[0].Text()); text != "" {
					h1s[text] = append(h1s[text], page.RelPath)
				}
			}
		}
		if cq.DetectDuplicatePages {
			hash := sha256.Sum256([]byte(page.Content))
			contentHashes[hash] = append(contentHashes[hash], page.RelPath)
		}
	}

	var findings []model.Finding

	if cq.DetectDuplicateTitles {
		for title, files := range titles {
			if len(files) < 2 {
				continue
			}
			message := fmt.Sprintf("Duplicate title '%s' shared by %d pages", truncate(title, 50), len(files))
			for _, file := range files {
				findings = append(findings, model.NewFinding("content/duplicate-title", file, "title", message))
			}
		}
	}
	if cq.DetectDuplicateDescriptions {
		for desc, files := range descriptions {
			if len(files) < 2 {
				continue
			}
			message := fmt.Sprintf("Duplicate meta description '%s' shared by %d pages", truncate(desc, 50), len(files))
			for _, file := range files {
				findings = append(findings, model.NewFinding("content/duplicate-description", file, "meta[name='description']", message))
			}
		}
	}
	if cq.DetectDuplicateH1 {
		for h1, files := range h1s {
			if len(files) < 2 {
				continue
			}
			message := fmt.Sprintf("Duplicate H1 '%s' shared by %d pages", truncate(h1, 50), len(files))
			for _, file := range files {
				findings = append(findings, model.NewFinding("content/duplicate-h1", file, "h1", message))
			}
		}
	}
	if cq.DetectDuplicatePages {
		for _, files := range contentHashes {
			if len(files) < 2 {
				continue
			}
			message := fmt.Sprintf("Identical HTML content shared by %d pages", len(files))
			for _, file := range files {
				findings = append(findings, model.NewFinding("content/duplicate-page", file, "", message))
			}
		}
	}

	return findings
}

// truncate shortens s to maxRunes runes, safe for multi-byte UTF-8.
func truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}
