package model

// Severity represents the level of an audit finding.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityInfo indicates informational findings that don't affect the
	// build verdict. Examples: generic link text, inline scripts.
	SeverityInfo Severity = iota

	// SeverityWarning indicates issues that should be addressed but don't
	// fail the audit unless --strict is set. Examples: orphan pages,
	// missing hreflang reciprocity, overly long titles.
	SeverityWarning

	// SeverityError indicates structural problems that fail the audit.
	// Examples: broken internal links, missing canonical tags, images
	// without alt text.
	SeverityError
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARN"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// RuleInfo contains metadata about a rule including its default severity,
// impact description, and remediation recommendation.
type RuleInfo struct {
	Severity       Severity
	Impact         string
	Recommendation string
}

// ruleInfoMapping maps rule identifiers to their metadata.
// This centralized mapping ensures consistent severity assignment and
// remediation text across the application.
//
// Design decision: We use a map rather than embedding severity in each
// finding site because:
// 1. It provides a single source of truth for rule levels
// 2. It keeps check code focused on detection, not presentation
// 3. It makes it easy to generate rule documentation
var ruleInfoMapping = map[string]RuleInfo{
	// Route model
	"routes/duplicate-route": {
		Severity:       SeverityWarning,
		Impact:         "Two output files normalize to the same route, so one of them is unreachable under the canonical URL scheme.",
		Recommendation: "Rename or remove one of the files so every route maps to exactly one page.",
	},

	// Internal links
	"links/broken": {
		Severity:       SeverityError,
		Impact:         "Visitors and crawlers following this link reach a page that does not exist in the build output.",
		Recommendation: "Fix the href to point to an existing page.",
	},
	"links/broken-fragment": {
		Severity:       SeverityWarning,
		Impact:         "The fragment target id does not exist, so the browser lands at the top of the page instead of the anchor.",
		Recommendation: "Add an element with the matching id, or fix the fragment.",
	},
	"links/query-params": {
		Severity:       SeverityError,
		Impact:         "Query parameters on internal links create duplicate-content URL variants for crawlers.",
		Recommendation: "Remove query parameters from internal links.",
	},
	"links/mixed-content": {
		Severity:       SeverityWarning,
		Impact:         "Absolute http:// internal links downgrade navigation from HTTPS.",
		Recommendation: "Use HTTPS or root-relative paths for all internal links.",
	},
	"links/orphan-page": {
		Severity:       SeverityWarning,
		Impact:         "The page is not reachable from any internal link, so visitors and crawlers can only find it via the sitemap or external references.",
		Recommendation: "Add internal links to this page or remove it if unneeded.",
	},

	// Canonical and robots meta
	"canonical/missing": {
		Severity:       SeverityError,
		Impact:         "Without a canonical tag, crawlers may index duplicate URL variants of this page.",
		Recommendation: "Add <link rel=\"canonical\" href=\"...\"> to <head>.",
	},
	"canonical/multiple": {
		Severity:       SeverityError,
		Impact:         "Multiple canonical tags are ambiguous; crawlers may pick any of them.",
		Recommendation: "Remove duplicate canonical tags, keep only one.",
	},
	"canonical/empty": {
		Severity:       SeverityError,
		Impact:         "An empty canonical href is ignored by crawlers and hides duplicate-content problems.",
		Recommendation: "Set the href to the canonical URL of this page.",
	},
	"canonical/not-absolute": {
		Severity:       SeverityError,
		Impact:         "Relative canonical URLs are resolved inconsistently by crawlers.",
		Recommendation: "Use a full URL including protocol and domain.",
	},
	"canonical/cross-origin": {
		Severity:       SeverityError,
		Impact:         "The canonical points at a different origin, handing ranking signals to another site.",
		Recommendation: "Point the canonical at the same origin as the configured site URL.",
	},
	"canonical/not-self": {
		Severity:       SeverityWarning,
		Impact:         "The page canonicalizes to a different URL, so this URL will not be indexed.",
		Recommendation: "If this page should self-canonicalize, update the canonical href.",
	},
	"canonical/target-missing": {
		Severity:       SeverityWarning,
		Impact:         "The canonical URL does not correspond to any page in the build output.",
		Recommendation: "Ensure the canonical URL points to an existing page.",
	},
	"robots/noindex": {
		Severity:       SeverityWarning,
		Impact:         "The page carries a noindex directive and will be excluded from search results.",
		Recommendation: "Remove noindex if this page should be indexed.",
	},

	// Sitemap consistency
	"sitemap/missing": {
		Severity:       SeverityError,
		Impact:         "No sitemap.xml was found, so crawlers must discover pages by link traversal alone.",
		Recommendation: "Configure the site generator to emit a sitemap.",
	},
	"sitemap/canonical-missing": {
		Severity:       SeverityWarning,
		Impact:         "An indexable page's canonical URL is not listed in the sitemap, weakening crawl coverage.",
		Recommendation: "Add this URL to the sitemap or check the canonical.",
	},
	"sitemap/entry-not-in-dist": {
		Severity:       SeverityWarning,
		Impact:         "The sitemap advertises a URL that does not exist in the build output.",
		Recommendation: "Remove stale entries from the sitemap or add the missing page.",
	},
	"sitemap/non-canonical-entry": {
		Severity:       SeverityWarning,
		Impact:         "The sitemap lists a URL that differs from the page's declared canonical, sending crawlers conflicting signals.",
		Recommendation: "Use the canonical URL in the sitemap.",
	},

	// Hreflang
	"hreflang/no-x-default": {
		Severity:       SeverityWarning,
		Impact:         "Without an x-default alternate, crawlers have no fallback for unmatched languages.",
		Recommendation: "Add <link rel=\"alternate\" hreflang=\"x-default\" href=\"...\">.",
	},
	"hreflang/no-self-reference": {
		Severity:       SeverityWarning,
		Impact:         "Hreflang sets that omit the page itself are treated as invalid by crawlers.",
		Recommendation: "Include the current page URL in its hreflang annotations.",
	},
	"hreflang/no-reciprocal": {
		Severity:       SeverityWarning,
		Impact:         "The alternate page does not link back, so crawlers ignore the whole hreflang relationship.",
		Recommendation: "Add a reciprocal hreflang link on the target page.",
	},

	// HTML basics
	"html/lang-missing": {
		Severity:       SeverityError,
		Impact:         "Screen readers cannot pick the right voice without a document language.",
		Recommendation: "Add a lang attribute, e.g. <html lang=\"en\">.",
	},
	"html/title-missing": {
		Severity:       SeverityError,
		Impact:         "Pages without a title are poorly represented in search results and browser tabs.",
		Recommendation: "Add a <title> tag inside <head>.",
	},
	"html/title-empty": {
		Severity:       SeverityError,
		Impact:         "An empty title behaves like a missing one for crawlers and assistive technology.",
		Recommendation: "Add descriptive text to the <title> tag.",
	},
	"html/title-too-long": {
		Severity:       SeverityWarning,
		Impact:         "Long titles are truncated in search result listings.",
		Recommendation: "Shorten the title for better display in search results.",
	},
	"html/meta-description-missing": {
		Severity:       SeverityWarning,
		Impact:         "Search engines synthesize a snippet from arbitrary page text when no description is present.",
		Recommendation: "Add <meta name=\"description\" content=\"...\"> to <head>.",
	},
	"html/meta-description-too-long": {
		Severity:       SeverityWarning,
		Impact:         "Long descriptions are truncated in search result listings.",
		Recommendation: "Shorten the description for better display in search results.",
	},
	"html/viewport-missing": {
		Severity:       SeverityError,
		Impact:         "Without a viewport meta tag, the page renders at desktop width on mobile devices.",
		Recommendation: "Add <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">.",
	},

	// Headings
	"headings/no-h1": {
		Severity:       SeverityError,
		Impact:         "Pages without an <h1> lack a machine-readable main heading.",
		Recommendation: "Add exactly one <h1> as the main heading.",
	},
	"headings/multiple-h1": {
		Severity:       SeverityWarning,
		Impact:         "Multiple <h1> headings blur the document outline for assistive technology.",
		Recommendation: "Use only one <h1> per page.",
	},
	"headings/skip-level": {
		Severity:       SeverityWarning,
		Impact:         "Skipped heading levels break the document outline used by screen reader navigation.",
		Recommendation: "Use sequential heading levels without gaps.",
	},

	// Accessibility
	"a11y/img-alt": {
		Severity:       SeverityError,
		Impact:         "Images without alt text are invisible to screen reader users.",
		Recommendation: "Add an alt attribute describing the image, or alt=\"\" for decorative images.",
	},
	"a11y/link-name": {
		Severity:       SeverityError,
		Impact:         "Links without an accessible name are announced as just 'link' by screen readers.",
		Recommendation: "Add text content, aria-label, or aria-labelledby to the link.",
	},
	"a11y/generic-link-text": {
		Severity:       SeverityInfo,
		Impact:         "Generic link text like 'click here' conveys nothing out of context.",
		Recommendation: "Use descriptive link text or add an aria-label.",
	},
	"a11y/button-name": {
		Severity:       SeverityError,
		Impact:         "Buttons without an accessible name cannot be identified by assistive technology.",
		Recommendation: "Add text content, aria-label, or aria-labelledby to the button.",
	},
	"a11y/form-label": {
		Severity:       SeverityError,
		Impact:         "Unlabeled form controls force screen reader users to guess their purpose.",
		Recommendation: "Add a <label for=\"id\">, aria-label, or aria-labelledby.",
	},
	"a11y/aria-hidden-focusable": {
		Severity:       SeverityWarning,
		Impact:         "aria-hidden elements that remain focusable create invisible tab stops.",
		Recommendation: "Remove aria-hidden from focusable elements, or add tabindex=\"-1\".",
	},

	// Open Graph
	"opengraph/title-missing": {
		Severity:       SeverityWarning,
		Impact:         "Shared links fall back to arbitrary page text without og:title.",
		Recommendation: "Add <meta property=\"og:title\" content=\"...\">.",
	},
	"opengraph/description-missing": {
		Severity:       SeverityWarning,
		Impact:         "Shared links show no summary without og:description.",
		Recommendation: "Add <meta property=\"og:description\" content=\"...\">.",
	},
	"opengraph/image-missing": {
		Severity:       SeverityWarning,
		Impact:         "Shared links render without a preview image.",
		Recommendation: "Add <meta property=\"og:image\" content=\"...\">.",
	},
	"opengraph/twitter-card-missing": {
		Severity:       SeverityWarning,
		Impact:         "Without twitter:card, link previews degrade on platforms that honor it.",
		Recommendation: "Add <meta name=\"twitter:card\" content=\"summary_large_image\">.",
	},

	// Structured data
	"structured-data/missing": {
		Severity:       SeverityWarning,
		Impact:         "Pages without JSON-LD miss rich-result eligibility.",
		Recommendation: "Add <script type=\"application/ld+json\"> with schema.org data.",
	},
	"structured-data/empty": {
		Severity:       SeverityError,
		Impact:         "An empty JSON-LD block is invalid structured data.",
		Recommendation: "Add valid JSON-LD content or remove the empty script tag.",
	},
	"structured-data/invalid-json": {
		Severity:       SeverityError,
		Impact:         "Malformed JSON-LD is discarded entirely by crawlers.",
		Recommendation: "Fix the JSON syntax in the structured data block.",
	},

	// Security heuristics
	"security/target-blank-noopener": {
		Severity:       SeverityWarning,
		Impact:         "target=\"_blank\" links without rel=\"noopener\" give the opened page scripting access to the opener.",
		Recommendation: "Add rel=\"noopener noreferrer\" to links with target=\"_blank\".",
	},
	"security/mixed-content": {
		Severity:       SeverityWarning,
		Impact:         "HTTP subresources on an HTTPS page are blocked or downgraded by browsers.",
		Recommendation: "Use HTTPS URLs for all embedded resources.",
	},
	"security/inline-scripts": {
		Severity:       SeverityInfo,
		Impact:         "Inline scripts require unsafe-inline in a Content-Security-Policy.",
		Recommendation: "Move inline scripts to external files for better CSP compatibility.",
	},

	// Content quality
	"content/duplicate-title": {
		Severity:       SeverityWarning,
		Impact:         "Pages sharing a title are hard to distinguish in search results.",
		Recommendation: "Give each page a unique title tag.",
	},
	"content/duplicate-description": {
		Severity:       SeverityWarning,
		Impact:         "Pages sharing a meta description look like duplicates to crawlers.",
		Recommendation: "Give each page a unique meta description.",
	},
	"content/duplicate-h1": {
		Severity:       SeverityInfo,
		Impact:         "Pages sharing an H1 blur each page's topic.",
		Recommendation: "Give each page a unique H1 heading.",
	},
	"content/duplicate-page": {
		Severity:       SeverityWarning,
		Impact:         "Byte-identical pages split ranking signals between duplicate URLs.",
		Recommendation: "Use canonical tags or redirects to consolidate identical pages.",
	},

	// Asset references
	"assets/broken": {
		Severity:       SeverityError,
		Impact:         "The referenced asset file does not exist in the build output, producing a 404 at runtime.",
		Recommendation: "Fix the path or add the missing asset file.",
	},
	"assets/img-dimensions": {
		Severity:       SeverityWarning,
		Impact:         "Images without width/height cause layout shift while loading.",
		Recommendation: "Add explicit width and height attributes.",
	},
	"assets/large-image": {
		Severity:       SeverityWarning,
		Impact:         "Oversized images slow page loads, especially on mobile connections.",
		Recommendation: "Compress the image or use a more efficient format.",
	},
	"assets/exif-metadata": {
		Severity:       SeverityWarning,
		Impact:         "EXIF metadata in published images may carry location, device, or author information.",
		Recommendation: "Strip EXIF metadata from images before publishing.",
	},

	// robots.txt
	"robots-txt/missing": {
		Severity:       SeverityWarning,
		Impact:         "Without robots.txt, crawlers receive no crawl directives at all.",
		Recommendation: "Add a robots.txt file to the site root.",
	},
	"robots-txt/no-sitemap": {
		Severity:       SeverityInfo,
		Impact:         "robots.txt does not advertise the sitemap location to crawlers.",
		Recommendation: "Add 'Sitemap: https://example.com/sitemap.xml' to robots.txt.",
	},
}

// GetSeverity returns the default severity for a rule identifier.
// Returns SeverityInfo if the rule is not in the mapping.
func GetSeverity(ruleID string) Severity {
	if info, ok := ruleInfoMapping[ruleID]; ok {
		return info.Severity
	}
	return SeverityInfo
}

// GetRuleInfo returns the full rule information for a rule identifier.
// Returns a default RuleInfo with SeverityInfo if the rule is not in the mapping.
func GetRuleInfo(ruleID string) RuleInfo {
	if info, ok := ruleInfoMapping[ruleID]; ok {
		return info
	}
	return RuleInfo{
		Severity:       SeverityInfo,
		Impact:         "",
		Recommendation: "",
	}
}

// KnownRules returns all rule identifiers in the mapping.
// Used by documentation tooling and tests.
func KnownRules() []string {
	rules := make([]string, 0, len(ruleInfoMapping))
	for id := range ruleInfoMapping {
		rules = append(rules, id)
	}
	return rules
}
