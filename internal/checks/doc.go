// Package checks implements the audit rules that run against a built
// site index. Each check suite inspects the pages (and site-wide files
// like sitemap.xml and robots.txt) and reports findings; the Runner
// executes suites in a fixed order and enforces the error budget.
package checks
