package checks

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/distlint/distlint/internal/config"
	"github.com/distlint/distlint/internal/discovery"
	"github.com/distlint/distlint/internal/htmldoc"
	"github.com/distlint/distlint/internal/model"
	"github.com/distlint/distlint/internal/normalize"
)

// OrphanCheck finds pages that no other page links to.
//
// The check runs in two phases: a concurrent phase where each worker
// collects the outbound routes of one page into its own set, and a
// single-threaded reduce phase that merges the sets and compares them
// against the index. The root route "/" is never an orphan.
type OrphanCheck struct {
	workers int
}

// Name returns the suite name.
func (c *OrphanCheck) Name() string { return "orphans" }

// Enabled reports whether orphan detection is turned on.
func (c *OrphanCheck) Enabled(rules *config.Rules) bool {
	return rules.Links.CheckInternal && rules.Links.DetectOrphanPages
}

// Run collects the link graph and reports unlinked pages.
func (c *OrphanCheck) Run(ctx context.Context, index *discovery.SiteIndex, _ *config.Rules) []model.Finding {
	workers := c.workers
	if workers <= 0 {
		workers = config.DefaultWorkers
	}

	// Phase 1: each slot owns the outbound routes of one page.
	perPage := make([]map[string]struct{}, len(index.Pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, page := range index.Pages {
		i, page := i, page
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			perPage[i] = outboundRoutes(page, index)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // Cancellation surfaces via the caller's context

	// Phase 2: merge and compare.
	linked := map[string]struct{}{"/": {}}
	for _, routes := range perPage {
		for route := range routes {
			linked[route] = struct{}{}
		}
	}

	var findings []model.Finding
	for _, page := range index.Pages {
		if _, ok := linked[page.Route]; ok {
			continue
		}
		findings = append(findings, model.NewFinding(
			"links/orphan-page",
			page.RelPath,
			"",
			fmt.Sprintf("Orphan page '%s' is not linked from any other page", page.Route),
		))
	}
	return findings
}

// outboundRoutes returns the set of normalized routes a page links to.
func outboundRoutes(page *model.Page, index *discovery.SiteIndex) map[string]struct{} {
	routes := make(map[string]struct{})

	doc, err := htmldoc.Parse(page.Content)
	if err != nil {
		return routes
	}

	for _, link := range doc.SelectWithAttr("a", "href") {
		href := link.Attr("href")
		if !normalize.IsInternal(href, index.BaseURL) {
			continue
		}
		if strings.HasPrefix(href, "#") || normalize.SkipScheme(href) {
			continue
		}
		if resolved, ok := normalize.ResolveHref(href, page.Route, index.BaseURL); ok {
			routes[normalize.Path(resolved, index.Policy)] = struct{}{}
		}
	}
	return routes
}
