package checks

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/distlint/distlint/internal/config"
	"github.com/distlint/distlint/internal/discovery"
	"github.com/distlint/distlint/internal/model"
)

// Check defines the interface that all check suites implement.
// Suites are executed in sequence by the Runner; each one inspects the
// shared read-only site index and returns its findings.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows suites to carry configuration state
// 2. It provides a Name() method for logging and debugging
// 3. It's more extensible for future features (e.g., per-suite timing)
type Check interface {
	// Name returns the suite's name for logging purposes.
	Name() string

	// Enabled reports whether the suite should run under these rules.
	Enabled(rules *config.Rules) bool

	// Run executes the suite against the site index.
	// Findings are returned, never written to shared state; the Runner
	// owns accumulation and ordering.
	Run(ctx context.Context, index *discovery.SiteIndex, rules *config.Rules) []model.Finding
}

// Runner executes check suites in order and accumulates their findings
// into an audit report.
type Runner struct {
	// checks contains the ordered list of suites to execute.
	checks []Check

	// rules is the check-suite tuning.
	rules *config.Rules

	// maxErrors is the error budget; 0 means unlimited.
	// The budget is evaluated between suites, not inside them, so a
	// single suite always reports completely or not at all.
	maxErrors int

	// workers bounds intra-suite concurrency.
	workers int

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets a custom logger for the runner.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithMaxErrors sets the error budget. 0 disables the budget.
func WithMaxErrors(n int) RunnerOption {
	return func(r *Runner) {
		r.maxErrors = n
	}
}

// WithRunnerWorkers sets the per-suite worker count.
func WithRunnerWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// NewRunner creates a Runner with the default suite order.
// The order matters for the error budget: the structural graph checks
// (routes, links, canonical, sitemap) run first so they are never cut
// off by per-page hygiene findings.
func NewRunner(rules *config.Rules, opts ...RunnerOption) *Runner {
	r := &Runner{
		rules:   rules,
		workers: config.DefaultWorkers,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.checks = []Check{
		&RoutesCheck{},
		&LinksCheck{workers: r.workers},
		&OrphanCheck{workers: r.workers},
		&CanonicalCheck{workers: r.workers},
		&SitemapCheck{},
		&HreflangCheck{},
		&HTMLBasicsCheck{workers: r.workers},
		&HeadingsCheck{workers: r.workers},
		&A11yCheck{workers: r.workers},
		&OpenGraphCheck{workers: r.workers},
		&StructuredDataCheck{workers: r.workers},
		&SecurityCheck{workers: r.workers},
		&ContentQualityCheck{},
		&AssetsCheck{workers: r.workers},
		&RobotsTxtCheck{},
	}
	return r
}

// Run executes every enabled suite against the index and fills the report.
// When the error budget is exhausted the remaining suites are skipped and
// the report is marked truncated; the findings collected so far are kept.
func (r *Runner) Run(ctx context.Context, index *discovery.SiteIndex, report *model.AuditReport) error {
	report.PagesChecked = len(index.Pages)

	for _, check := range r.checks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !check.Enabled(r.rules) {
			r.logger.Debug("suite disabled, skipping", "suite", check.Name())
			continue
		}

		if r.maxErrors > 0 && report.Errors() >= r.maxErrors {
			r.logger.Warn("error budget exhausted, skipping remaining suites",
				"budget", r.maxErrors,
				"completed_through", report.PerformedChecks,
			)
			report.Truncated = true
			break
		}

		start := time.Now()
		findings := check.Run(ctx, index, r.rules)
		report.Add(findings...)
		report.PerformedChecks = append(report.PerformedChecks, check.Name())

		r.logger.Debug("suite completed",
			"suite", check.Name(),
			"findings", len(findings),
			"duration", time.Since(start),
		)
	}

	report.Sort()
	return nil
}

// forEachPage runs fn for every page concurrently and concatenates the
// per-page findings in page order. Each goroutine owns its result slot,
// so no locking is needed and output order stays deterministic.
func forEachPage(ctx context.Context, index *discovery.SiteIndex, workers int, fn func(page *model.Page) []model.Finding) []model.Finding {
	if workers <= 0 {
		workers = config.DefaultWorkers
	}

	results := make([][]model.Finding, len(index.Pages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, page := range index.Pages {
		i, page := i, page
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = fn(page)
			return nil
		})
	}

	// Cancellation surfaces as a shorter findings list; the caller's
	// context error ends the run anyway.
	_ = g.Wait() //nolint:errcheck

	var findings []model.Finding
	for _, fs := range results {
		findings = append(findings, fs...)
	}
	return findings
}
