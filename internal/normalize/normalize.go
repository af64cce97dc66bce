package normalize

import (
	"net/url"
	"strings"
)

// TrailingSlash selects how a trailing slash is enforced on routes.
type TrailingSlash int

const (
	// TrailingSlashAlways appends a trailing slash when missing.
	TrailingSlashAlways TrailingSlash = iota

	// TrailingSlashNever strips a trailing slash when present.
	TrailingSlashNever

	// TrailingSlashIgnore leaves the path as written.
	TrailingSlashIgnore
)

// String returns the policy name as used in the rules file.
func (t TrailingSlash) String() string {
	switch t {
	case TrailingSlashAlways:
		return "always"
	case TrailingSlashNever:
		return "never"
	case TrailingSlashIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}

// IndexHTML selects how index files are treated in routes.
type IndexHTML int

const (
	// IndexHTMLForbid strips an index.html/index.htm suffix from routes.
	IndexHTMLForbid IndexHTML = iota

	// IndexHTMLAllow keeps index file names literal in routes.
	IndexHTMLAllow
)

// String returns the policy name as used in the rules file.
func (i IndexHTML) String() string {
	switch i {
	case IndexHTMLForbid:
		return "forbid"
	case IndexHTMLAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// Policy is the URL normalization policy. It is a pure configuration
// value constructed once at startup and passed by value everywhere.
type Policy struct {
	TrailingSlash TrailingSlash
	IndexHTML     IndexHTML
}

// DefaultPolicy matches the common static-site convention: directory
// URLs with trailing slashes and no visible index.html.
func DefaultPolicy() Policy {
	return Policy{
		TrailingSlash: TrailingSlashAlways,
		IndexHTML:     IndexHTMLForbid,
	}
}

// CollapseDots collapses "." and ".." path segments left to right using
// a segment stack, clamping at the root rather than walking above it.
// No filesystem access is involved.
func CollapseDots(path string) string {
	segments := make([]string, 0, 8)
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case ".":
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		default:
			segments = append(segments, seg)
		}
	}
	result := strings.Join(segments, "/")
	if strings.HasPrefix(path, "/") && !strings.HasPrefix(result, "/") {
		return "/" + result
	}
	return result
}

// Path normalizes a URL path according to the policy:
//
//   - collapses "." and ".." segments
//   - strips an /index.html or /index.htm suffix when IndexHTMLForbid
//   - enforces the trailing-slash policy, leaving the root "/" alone
//
// The function is total and idempotent: it never fails, and
// Path(Path(p)) == Path(p) for every input.
func Path(path string, policy Policy) string {
	p := CollapseDots(path)

	if policy.IndexHTML == IndexHTMLForbid {
		switch {
		case strings.HasSuffix(p, "/index.html"):
			p = strings.TrimSuffix(p, "index.html")
		case strings.HasSuffix(p, "/index.htm"):
			p = strings.TrimSuffix(p, "index.htm")
		case p == "index.html" || p == "/index.html" || p == "index.htm" || p == "/index.htm":
			p = "/"
		}
	}

	if p != "/" {
		switch policy.TrailingSlash {
		case TrailingSlashAlways:
			if !strings.HasSuffix(p, "/") {
				p += "/"
			}
		case TrailingSlashNever:
			if strings.HasSuffix(p, "/") && len(p) > 1 {
				p = strings.TrimRight(p, "/")
			}
		case TrailingSlashIgnore:
		}
	}

	return p
}

// FileToRoute converts a file path relative to the dist root into a
// normalized route.
//
//	"about/index.html"      -> "/about/"
//	"blog/post.html"        -> "/blog/post/"
//	"blog/2024/my-post.html" -> "/blog/2024/my-post/"
func FileToRoute(relPath string, policy Policy) string {
	route := "/" + strings.ReplaceAll(relPath, "\\", "/")

	// Strip the .html/.htm extension; index files reduce to their directory.
	switch {
	case strings.HasSuffix(route, "/index.html"):
		route = strings.TrimSuffix(route, "index.html")
	case strings.HasSuffix(route, "/index.htm"):
		route = strings.TrimSuffix(route, "index.htm")
	case strings.HasSuffix(route, ".html"):
		route = strings.TrimSuffix(route, ".html")
	case strings.HasSuffix(route, ".htm"):
		route = strings.TrimSuffix(route, ".htm")
	}

	if route == "" {
		route = "/"
	}

	return Path(route, policy)
}

// ToAbsolute joins a route onto a base URL, returning the absolute URL
// string. Returns false if the base URL does not parse.
func ToAbsolute(route, baseURL string) (string, bool) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", false
	}
	ref, err := url.Parse(route)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(ref).String(), true
}

// URL normalizes the path component of an absolute URL string, leaving
// scheme, host, query, and fragment intact. Unparsable input is
// returned unchanged so callers can still compare raw strings.
func URL(rawURL string, policy Policy) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	parsed.Path = Path(parsed.Path, policy)
	return parsed.String()
}
