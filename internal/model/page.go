package model

// Page holds the per-file metadata extracted during discovery.
//
// A Page is created once by the extractor and never mutated afterwards;
// the site index shares pages read-only across all concurrent checks.
// The raw HTML is retained because several checks re-parse it into
// different views (link lists, id sets, heading outlines).
type Page struct {
	// RelPath is the file path relative to the dist root
	// (e.g. "about/index.html"). This is the page's identity.
	RelPath string

	// AbsPath is the absolute filesystem path, used by checks that
	// need file-level access (asset resolution, EXIF reads).
	AbsPath string

	// Route is the normalized route URL (e.g. "/about/").
	Route string

	// AbsoluteURL is the page URL joined onto the configured base URL.
	// Empty when no base URL is configured.
	AbsoluteURL string

	// Canonical is the first link[rel=canonical] href declared by the
	// page, as written and unvalidated. Empty if none.
	Canonical string

	// Noindex reports whether any meta[name=robots] content contains
	// "noindex" (case-insensitive).
	Noindex bool

	// Content is the page's full HTML text.
	Content string
}
