package discovery

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/distlint/distlint/internal/htmldoc"
	"github.com/distlint/distlint/internal/model"
	"github.com/distlint/distlint/internal/normalize"
)

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithExtractorLogger sets the logger for extraction warnings.
func WithExtractorLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithWorkers sets the number of concurrent extraction workers.
func WithWorkers(n int) ExtractorOption {
	return func(e *Extractor) {
		if n > 0 {
			e.workers = n
		}
	}
}

// Extractor reads discovered HTML files and produces Page values with
// their metadata pre-extracted.
//
// Each file is parsed exactly once here, for the canonical link and the
// robots meta tag. Checks that need the DOM re-parse the stored raw
// content themselves; keeping raw strings in the index instead of
// parsed trees keeps pages cheap to share across concurrent checks.
type Extractor struct {
	policy  normalize.Policy
	baseURL string
	workers int
	logger  *slog.Logger
}

// NewExtractor creates an Extractor for the given normalization policy
// and optional base URL.
func NewExtractor(policy normalize.Policy, baseURL string, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		policy:  policy,
		baseURL: baseURL,
		workers: 8,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractPages reads and processes the discovered files concurrently.
// Files that cannot be read are logged and skipped rather than failing
// the audit; a single unreadable file should not hide every other
// finding. The returned pages preserve the input (sorted) order.
func (e *Extractor) ExtractPages(ctx context.Context, files []FileEntry) ([]*model.Page, error) {
	// Pre-allocate results slice to maintain order
	results := make([]*model.Page, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			page, err := e.extractOne(file)
			if err != nil {
				e.logger.Warn("could not read page, skipping",
					"file", file.RelPath,
					"error", err,
				)
				return nil
			}
			results[i] = page
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Compact skipped entries
	pages := make([]*model.Page, 0, len(results))
	for _, page := range results {
		if page != nil {
			pages = append(pages, page)
		}
	}
	return pages, nil
}

// extractOne reads a single file and extracts its metadata.
func (e *Extractor) extractOne(file FileEntry) (*model.Page, error) {
	data, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return nil, err
	}
	content := string(data)

	doc, err := htmldoc.Parse(content)
	if err != nil {
		return nil, err
	}

	var canonical string
	if el, ok := doc.First("link", "rel", "canonical"); ok {
		canonical = el.Attr("href")
	}

	noindex := false
	for _, meta := range doc.SelectAttrEqual("meta", "name", "robots") {
		if strings.Contains(strings.ToLower(meta.Attr("content")), "noindex") {
			noindex = true
			break
		}
	}

	route := normalize.FileToRoute(file.RelPath, e.policy)

	var absoluteURL string
	if e.baseURL != "" {
		if abs, ok := normalize.ToAbsolute(route, e.baseURL); ok {
			absoluteURL = abs
		}
	}

	return &model.Page{
		RelPath:     file.RelPath,
		AbsPath:     file.AbsPath,
		Route:       route,
		AbsoluteURL: absoluteURL,
		Canonical:   canonical,
		Noindex:     noindex,
		Content:     content,
	}, nil
}
