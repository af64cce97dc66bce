// Package main provides the entry point for the distlint CLI.
//
// distlint is a static auditor for static-site build output. It reads
// the generated HTML from a dist directory and checks link integrity,
// URL hygiene, SEO metadata, and accessibility without making any
// network requests.
//
// Usage:
//
//	distlint audit ./dist
//	distlint audit --site https://example.com ./dist
//
// See --help for all available options.
package main

// main is the entry point for distlint.
func main() {
	Execute()
}
