// Package discovery builds the in-memory site index that every check
// suite runs against. It walks the build output directory for HTML
// files, extracts per-page metadata concurrently, maps files to
// normalized routes, and parses sitemap.xml when present.
package discovery
