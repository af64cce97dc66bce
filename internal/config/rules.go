package config

import (
	"net/url"

	"github.com/distlint/distlint/internal/normalize"
)

// Rules is the root of the YAML rules file (.distlint.yml).
// Every section tunes one check suite; a missing section keeps that
// suite's defaults, so a minimal rules file only names what it changes.
//
// Note for YAML decoding: DefaultRules() pre-populates every field and
// the decoder overwrites only the keys present in the file. This gives
// per-field defaulting without a custom unmarshaler per section.
type Rules struct {
	// Site identifies the deployed site.
	Site SiteRules `yaml:"site"`

	// URLNormalization controls how file paths and hrefs map to routes.
	URLNormalization URLNormalizationRules `yaml:"url_normalization"`

	// Canonical tunes the canonical link checks.
	Canonical CanonicalRules `yaml:"canonical"`

	// RobotsMeta tunes the robots meta tag checks.
	RobotsMeta RobotsMetaRules `yaml:"robots_meta"`

	// Links tunes the internal link graph checks.
	Links LinksRules `yaml:"links"`

	// Sitemap tunes the sitemap consistency checks.
	Sitemap SitemapRules `yaml:"sitemap"`

	// HTMLBasics tunes the per-page HTML hygiene checks.
	HTMLBasics HTMLBasicsRules `yaml:"html_basics"`

	// Headings tunes the heading structure checks.
	Headings HeadingsRules `yaml:"headings"`

	// A11y tunes the accessibility checks.
	A11y A11yRules `yaml:"a11y"`

	// Assets tunes the static asset checks.
	Assets AssetsRules `yaml:"assets"`

	// OpenGraph tunes the social metadata checks.
	OpenGraph OpenGraphRules `yaml:"opengraph"`

	// StructuredData tunes the JSON-LD checks.
	StructuredData StructuredDataRules `yaml:"structured_data"`

	// Hreflang tunes the hreflang alternate link checks.
	Hreflang HreflangRules `yaml:"hreflang"`

	// Security tunes the security hygiene checks.
	Security SecurityRules `yaml:"security"`

	// ContentQuality tunes the cross-page duplicate content checks.
	ContentQuality ContentQualityRules `yaml:"content_quality"`

	// RobotsTxt tunes the robots.txt checks.
	RobotsTxt RobotsTxtRules `yaml:"robots_txt"`
}

// SiteRules identifies the deployed site.
type SiteRules struct {
	// BaseURL is the canonical origin of the deployed site, e.g.
	// "https://example.com". The --site flag takes precedence.
	BaseURL string `yaml:"base_url"`
}

// URLNormalizationRules controls the route normalization policy.
// The values are strings in the file and converted to the normalize
// package's enums by Policy().
type URLNormalizationRules struct {
	// TrailingSlash is one of "always", "never", or "ignore".
	TrailingSlash string `yaml:"trailing_slash"`

	// IndexHTML is one of "forbid" or "allow".
	IndexHTML string `yaml:"index_html"`
}

// CanonicalRules tunes the canonical link checks.
type CanonicalRules struct {
	Require       bool `yaml:"require"`
	Absolute      bool `yaml:"absolute"`
	SameOrigin    bool `yaml:"same_origin"`
	SelfReference bool `yaml:"self_reference"`
}

// RobotsMetaRules tunes the robots meta tag checks.
type RobotsMetaRules struct {
	// AllowNoindex suppresses the informational finding on noindex pages.
	AllowNoindex bool `yaml:"allow_noindex"`

	// FailIfNoindex raises the noindex finding to error severity,
	// for sites where no page should ever opt out of indexing.
	FailIfNoindex bool `yaml:"fail_if_noindex"`
}

// LinksRules tunes the internal link graph checks.
type LinksRules struct {
	CheckInternal             bool `yaml:"check_internal"`
	FailOnBroken              bool `yaml:"fail_on_broken"`
	ForbidQueryParamsInternal bool `yaml:"forbid_query_params_internal"`
	CheckAssets               bool `yaml:"check_assets"`
	CheckFragments            bool `yaml:"check_fragments"`
	DetectOrphanPages         bool `yaml:"detect_orphan_pages"`
	CheckMixedContent         bool `yaml:"check_mixed_content"`
}

// SitemapRules tunes the sitemap consistency checks.
type SitemapRules struct {
	Require                   bool `yaml:"require"`
	CanonicalMustBeInSitemap  bool `yaml:"canonical_must_be_in_sitemap"`
	ForbidNoncanonicalEntries bool `yaml:"forbid_noncanonical_in_sitemap"`
	EntriesMustExistInDist    bool `yaml:"entries_must_exist_in_dist"`
}

// HTMLBasicsRules tunes the per-page HTML hygiene checks.
type HTMLBasicsRules struct {
	LangAttrRequired         bool `yaml:"lang_attr_required"`
	TitleRequired            bool `yaml:"title_required"`
	MetaDescriptionRequired  bool `yaml:"meta_description_required"`
	ViewportRequired         bool `yaml:"viewport_required"`
	TitleMaxLength           int  `yaml:"title_max_length"`
	MetaDescriptionMaxLength int  `yaml:"meta_description_max_length"`
}

// HeadingsRules tunes the heading structure checks.
type HeadingsRules struct {
	RequireH1 bool `yaml:"require_h1"`
	SingleH1  bool `yaml:"single_h1"`
	NoSkip    bool `yaml:"no_skip"`
}

// A11yRules tunes the accessibility checks.
type A11yRules struct {
	ImgAltRequired          bool `yaml:"img_alt_required"`
	AllowDecorativeImages   bool `yaml:"allow_decorative_images"`
	LinkNameRequired        bool `yaml:"a_accessible_name_required"`
	ButtonNameRequired      bool `yaml:"button_name_required"`
	LabelForRequired        bool `yaml:"label_for_required"`
	WarnGenericLinkText     bool `yaml:"warn_generic_link_text"`
	AriaHiddenFocusableScan bool `yaml:"aria_hidden_focusable_check"`
}

// AssetsRules tunes the static asset checks.
type AssetsRules struct {
	CheckBrokenAssets    bool `yaml:"check_broken_assets"`
	CheckImageDimensions bool `yaml:"check_image_dimensions"`
	CheckEXIFMetadata    bool `yaml:"check_exif_metadata"`
	MaxImageSizeKB       int  `yaml:"max_image_size_kb"`
}

// OpenGraphRules tunes the social metadata checks.
type OpenGraphRules struct {
	RequireOGTitle       bool `yaml:"require_og_title"`
	RequireOGDescription bool `yaml:"require_og_description"`
	RequireOGImage       bool `yaml:"require_og_image"`
	RequireTwitterCard   bool `yaml:"require_twitter_card"`
}

// StructuredDataRules tunes the JSON-LD checks.
type StructuredDataRules struct {
	CheckJSONLD   bool `yaml:"check_json_ld"`
	RequireJSONLD bool `yaml:"require_json_ld"`
}

// HreflangRules tunes the hreflang alternate link checks.
type HreflangRules struct {
	CheckHreflang        bool `yaml:"check_hreflang"`
	RequireXDefault      bool `yaml:"require_x_default"`
	RequireSelfReference bool `yaml:"require_self_reference"`
	RequireReciprocal    bool `yaml:"require_reciprocal"`
}

// SecurityRules tunes the security hygiene checks.
type SecurityRules struct {
	CheckTargetBlank  bool `yaml:"check_target_blank"`
	CheckMixedContent bool `yaml:"check_mixed_content"`
	WarnInlineScripts bool `yaml:"warn_inline_scripts"`
}

// ContentQualityRules tunes the cross-page duplicate content checks.
type ContentQualityRules struct {
	DetectDuplicateTitles       bool `yaml:"detect_duplicate_titles"`
	DetectDuplicateDescriptions bool `yaml:"detect_duplicate_descriptions"`
	DetectDuplicateH1           bool `yaml:"detect_duplicate_h1"`
	DetectDuplicatePages        bool `yaml:"detect_duplicate_pages"`
}

// RobotsTxtRules tunes the robots.txt checks.
type RobotsTxtRules struct {
	Require            bool `yaml:"require"`
	RequireSitemapLink bool `yaml:"require_sitemap_link"`
}

// DefaultRules returns the rules applied when no rules file exists.
// The defaults favor the checks that are correct on any static site
// (broken links, canonical hygiene, basic HTML) and leave the opinionated
// or base-URL-dependent checks opt-in.
func DefaultRules() *Rules {
	return &Rules{
		URLNormalization: URLNormalizationRules{
			TrailingSlash: "always",
			IndexHTML:     "forbid",
		},
		Canonical: CanonicalRules{
			Require:       true,
			Absolute:      true,
			SameOrigin:    true,
			SelfReference: false,
		},
		RobotsMeta: RobotsMetaRules{
			AllowNoindex:  true,
			FailIfNoindex: false,
		},
		Links: LinksRules{
			CheckInternal:             true,
			FailOnBroken:              true,
			ForbidQueryParamsInternal: true,
			CheckAssets:               false,
			CheckFragments:            false,
			DetectOrphanPages:         false,
			CheckMixedContent:         true,
		},
		Sitemap: SitemapRules{
			Require:                   false,
			CanonicalMustBeInSitemap:  true,
			ForbidNoncanonicalEntries: false,
			EntriesMustExistInDist:    true,
		},
		HTMLBasics: HTMLBasicsRules{
			LangAttrRequired:         true,
			TitleRequired:            true,
			MetaDescriptionRequired:  false,
			ViewportRequired:         true,
			TitleMaxLength:           DefaultTitleMaxLength,
			MetaDescriptionMaxLength: DefaultDescriptionMaxLength,
		},
		Headings: HeadingsRules{
			RequireH1: true,
			SingleH1:  true,
			NoSkip:    false,
		},
		A11y: A11yRules{
			ImgAltRequired:          true,
			AllowDecorativeImages:   true,
			LinkNameRequired:        true,
			ButtonNameRequired:      true,
			LabelForRequired:        true,
			WarnGenericLinkText:     true,
			AriaHiddenFocusableScan: true,
		},
		Assets: AssetsRules{
			CheckBrokenAssets:    false,
			CheckImageDimensions: false,
			CheckEXIFMetadata:    false,
		},
		OpenGraph:      OpenGraphRules{},
		StructuredData: StructuredDataRules{},
		Hreflang:       HreflangRules{},
		Security: SecurityRules{
			CheckTargetBlank:  true,
			CheckMixedContent: true,
			WarnInlineScripts: false,
		},
		ContentQuality: ContentQualityRules{},
		RobotsTxt:      RobotsTxtRules{},
	}
}

// Policy converts the string-typed normalization rules to the
// normalize package's policy enums.
// Unknown values have already been rejected by Validate.
func (r *Rules) Policy() normalize.Policy {
	p := normalize.DefaultPolicy()
	switch r.URLNormalization.TrailingSlash {
	case "always":
		p.TrailingSlash = normalize.TrailingSlashAlways
	case "never":
		p.TrailingSlash = normalize.TrailingSlashNever
	case "ignore":
		p.TrailingSlash = normalize.TrailingSlashIgnore
	}
	switch r.URLNormalization.IndexHTML {
	case "forbid":
		p.IndexHTML = normalize.IndexHTMLForbid
	case "allow":
		p.IndexHTML = normalize.IndexHTMLAllow
	}
	return p
}

// Validate checks that the rules are internally consistent.
func (r *Rules) Validate() error {
	switch r.URLNormalization.TrailingSlash {
	case "always", "never", "ignore":
	default:
		return ErrInvalidTrailingSlash
	}
	switch r.URLNormalization.IndexHTML {
	case "forbid", "allow":
	default:
		return ErrInvalidIndexHTML
	}
	if r.Site.BaseURL != "" {
		u, err := url.Parse(r.Site.BaseURL)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return ErrInvalidBaseURL
		}
	}
	return nil
}
