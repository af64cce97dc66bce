// Package normalize implements route normalization and href resolution.
//
// A "route" is the normalized, site-relative URL path that identifies a
// page (e.g. "/about/"). Every component that compares URLs — the site
// index, the link checks, the sitemap consistency pass — funnels paths
// through this package so that comparisons are performed on a single
// canonical form.
//
// All functions are pure: they take the normalization policy as an
// argument and never consult global state or the filesystem.
package normalize
