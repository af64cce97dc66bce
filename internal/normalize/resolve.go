package normalize

import (
	"net/url"
	"strings"
)

// HrefKind classifies an href by its addressing form.
type HrefKind int

const (
	// HrefFragment is a same-page fragment reference ("#section").
	HrefFragment HrefKind = iota

	// HrefProtocolRelative starts with "//" and borrows the page scheme.
	HrefProtocolRelative

	// HrefAbsolute carries an explicit scheme ("https://...").
	HrefAbsolute

	// HrefRelative is everything else: root-relative or path-relative.
	HrefRelative
)

// Classify determines the addressing form of an href.
func Classify(href string) HrefKind {
	switch {
	case strings.HasPrefix(href, "#"):
		return HrefFragment
	case strings.HasPrefix(href, "//"):
		return HrefProtocolRelative
	case strings.Contains(href, "://"):
		return HrefAbsolute
	default:
		return HrefRelative
	}
}

// IsInternal reports whether an href targets the audited site.
// Relative hrefs are always internal. Protocol-relative and absolute
// hrefs are internal only when their host matches the base URL's host;
// without a base URL they are treated as external.
func IsInternal(href, baseURL string) bool {
	switch Classify(href) {
	case HrefFragment, HrefRelative:
		return true
	case HrefProtocolRelative:
		if baseURL == "" {
			return false
		}
		base, err := url.Parse(baseURL)
		if err != nil {
			return false
		}
		resolved, err := url.Parse(base.Scheme + ":" + href)
		if err != nil {
			return false
		}
		return hostsEqual(resolved, base)
	default: // HrefAbsolute
		if baseURL == "" {
			return false
		}
		base, err := url.Parse(baseURL)
		if err != nil {
			return false
		}
		parsed, err := url.Parse(href)
		if err != nil {
			return false
		}
		return originsEqual(parsed, base)
	}
}

// HasQueryParams reports whether the href carries query parameters,
// ignoring anything after a fragment marker.
func HasQueryParams(href string) bool {
	withoutFragment, _, _ := strings.Cut(href, "#")
	return strings.Contains(withoutFragment, "?")
}

// StripFragmentAndQuery returns the href with any fragment and query
// removed, leaving just the path portion.
func StripFragmentAndQuery(href string) string {
	s, _, _ := strings.Cut(href, "#")
	s, _, _ = strings.Cut(s, "?")
	return s
}

// Fragment returns the fragment portion of the href (without the "#")
// and whether one was present.
func Fragment(href string) (string, bool) {
	_, frag, ok := strings.Cut(href, "#")
	return frag, ok
}

// ResolveHref resolves an href found on a page into a candidate route.
//
// The query and fragment are stripped first. An empty remainder resolves
// to the page's own route. Absolute and protocol-relative hrefs resolve
// to the URL's path component. Relative hrefs resolve against the page's
// directory and pass through the same dot-segment collapse as routes.
//
// Malformed input never panics: the second return value is false and the
// caller treats the href as unresolvable (skip, do not report).
func ResolveHref(href, pageRoute, baseURL string) (string, bool) {
	clean := StripFragmentAndQuery(href)

	if clean == "" {
		return pageRoute, true
	}

	if strings.Contains(clean, "://") || strings.HasPrefix(clean, "//") {
		if parsed, err := url.Parse(clean); err == nil && parsed.Host != "" && parsed.Scheme != "" {
			return parsed.Path, true
		}
		// Protocol-relative: borrow the base URL's scheme.
		if baseURL != "" {
			if base, err := url.Parse(baseURL); err == nil {
				if parsed, err := url.Parse(base.Scheme + ":" + clean); err == nil {
					return parsed.Path, true
				}
			}
		}
		return "", false
	}

	if strings.HasPrefix(clean, "/") {
		return CollapseDots(clean), true
	}

	// Path-relative: resolve against the page's directory, which is the
	// route up to and including its final "/".
	pageDir := pageRoute
	if !strings.HasSuffix(pageDir, "/") {
		if pos := strings.LastIndex(pageRoute, "/"); pos >= 0 {
			pageDir = pageRoute[:pos+1]
		} else {
			pageDir = "/"
		}
	}
	return CollapseDots(pageDir + clean), true
}

// SkipScheme reports whether the href uses a non-navigational scheme
// that link checks ignore entirely.
func SkipScheme(href string) bool {
	return strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "data:")
}

// hostsEqual compares URL hosts case-insensitively.
func hostsEqual(a, b *url.URL) bool {
	return strings.EqualFold(a.Hostname(), b.Hostname())
}

// originsEqual compares scheme and host:port.
func originsEqual(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) && strings.EqualFold(a.Host, b.Host)
}

// Origin returns the scheme://host[:port] portion of a URL string, or
// false if it does not parse as an absolute URL.
func Origin(rawURL string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}
	return parsed.Scheme + "://" + parsed.Host, true
}
