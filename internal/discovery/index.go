package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/distlint/distlint/internal/model"
	"github.com/distlint/distlint/internal/normalize"
)

// RouteCollision records two files that normalize to the same route.
// The first file in sorted walk order owns the route; the collision is
// surfaced as a finding instead of aborting the audit, because a
// collision in the build output is itself a defect worth reporting.
type RouteCollision struct {
	// Route is the contested normalized route.
	Route string

	// OwnerRelPath is the file that kept the route.
	OwnerRelPath string

	// RelPath is the file that lost the route.
	RelPath string
}

// SiteIndex is the in-memory index of all HTML pages in the dist
// directory. It is built once per audit and then read concurrently by
// the check suites; nothing mutates it after Build returns.
type SiteIndex struct {
	// Pages holds every successfully extracted page, in sorted
	// relative-path order.
	Pages []*model.Page

	// SitemapURLs is the set of <loc> entries from sitemap.xml,
	// or empty when no sitemap exists.
	SitemapURLs map[string]struct{}

	// HasSitemap reports whether dist contains a sitemap.xml.
	HasSitemap bool

	// DistPath is the absolute path of the audited directory.
	DistPath string

	// BaseURL is the canonical site origin, or "" when not configured.
	BaseURL string

	// Policy is the URL normalization policy the index was built with.
	Policy normalize.Policy

	// Collisions lists routes claimed by more than one file.
	Collisions []RouteCollision

	routeTo map[string]*model.Page
}

// IndexOption configures Build.
type IndexOption func(*indexOptions)

type indexOptions struct {
	include []string
	exclude []string
	workers int
	logger  *slog.Logger
}

// WithInclude sets the include glob patterns.
func WithInclude(patterns []string) IndexOption {
	return func(o *indexOptions) {
		o.include = patterns
	}
}

// WithExclude sets the exclude glob patterns.
func WithExclude(patterns []string) IndexOption {
	return func(o *indexOptions) {
		o.exclude = patterns
	}
}

// WithIndexWorkers sets the number of concurrent extraction workers.
func WithIndexWorkers(n int) IndexOption {
	return func(o *indexOptions) {
		o.workers = n
	}
}

// WithIndexLogger sets the logger used during index construction.
func WithIndexLogger(logger *slog.Logger) IndexOption {
	return func(o *indexOptions) {
		o.logger = logger
	}
}

// Build discovers, reads, and indexes every HTML page under distPath.
func Build(ctx context.Context, distPath, baseURL string, policy normalize.Policy, opts ...IndexOption) (*SiteIndex, error) {
	o := indexOptions{
		workers: 8,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	root, err := filepath.Abs(distPath)
	if err != nil {
		return nil, fmt.Errorf("resolve dist path: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat dist path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dist path %q is not a directory", distPath)
	}

	files, err := DiscoverHTMLFiles(root, o.include, o.exclude)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("discovered HTML files", "count", len(files))

	extractor := NewExtractor(policy, baseURL,
		WithWorkers(o.workers),
		WithExtractorLogger(o.logger),
	)
	pages, err := extractor.ExtractPages(ctx, files)
	if err != nil {
		return nil, err
	}

	idx := &SiteIndex{
		Pages:       pages,
		SitemapURLs: make(map[string]struct{}),
		DistPath:    root,
		BaseURL:     baseURL,
		Policy:      policy,
		routeTo:     make(map[string]*model.Page, len(pages)),
	}

	// First file in sorted order wins a contested route; the loser is
	// recorded and later reported as a finding.
	for _, page := range pages {
		if owner, ok := idx.routeTo[page.Route]; ok {
			idx.Collisions = append(idx.Collisions, RouteCollision{
				Route:        page.Route,
				OwnerRelPath: owner.RelPath,
				RelPath:      page.RelPath,
			})
			continue
		}
		idx.routeTo[page.Route] = page
	}

	sitemapPath := filepath.Join(root, "sitemap.xml")
	if _, err := os.Stat(sitemapPath); err == nil {
		idx.HasSitemap = true
		urls, err := ParseSitemap(sitemapPath)
		if err != nil {
			o.logger.Warn("could not parse sitemap.xml", "error", err)
		}
		for _, u := range urls {
			idx.SitemapURLs[u] = struct{}{}
		}
	}

	return idx, nil
}

// RouteExists reports whether a normalized route maps to a page.
func (s *SiteIndex) RouteExists(route string) bool {
	_, ok := s.routeTo[route]
	return ok
}

// PageFor returns the page owning the given normalized route.
func (s *SiteIndex) PageFor(route string) (*model.Page, bool) {
	page, ok := s.routeTo[route]
	return page, ok
}

// FileExists reports whether a dist-relative file path exists on disk.
// Used for asset links that bypass route normalization.
func (s *SiteIndex) FileExists(relPath string) bool {
	_, err := os.Stat(filepath.Join(s.DistPath, filepath.FromSlash(relPath)))
	return err == nil
}
