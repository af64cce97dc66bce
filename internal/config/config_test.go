package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/distlint/distlint/internal/normalize"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected
// default values. This serves as living documentation of the defaults and
// ensures that changes to them are intentional.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default Workers is 8", func(t *testing.T) {
		t.Parallel()
		if cfg.Workers != 8 {
			t.Errorf("expected Workers to be 8, got %d", cfg.Workers)
		}
	})

	t.Run("default MaxErrors is unlimited", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxErrors != 0 {
			t.Errorf("expected MaxErrors to be 0, got %d", cfg.MaxErrors)
		}
	})

	t.Run("default Rules are populated", func(t *testing.T) {
		t.Parallel()
		if cfg.Rules == nil {
			t.Fatal("expected Rules to be non-nil")
		}
		if !cfg.Rules.Links.CheckInternal {
			t.Error("expected default Links.CheckInternal to be true")
		}
	})

	t.Run("default DBDir is under the XDG data dir", func(t *testing.T) {
		t.Parallel()
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir to be %q, got %q", XDGDataDir(), cfg.DBDir)
		}
	})
}

// TestDefaultRulesOptInSuites pins down which suites are off out of the
// box. Structured data, hreflang, and the robots.txt sitemap link are
// opt-in; turning any of them on by default changes the findings a
// fresh install produces.
func TestDefaultRulesOptInSuites(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	if rules.StructuredData.CheckJSONLD {
		t.Error("expected default StructuredData.CheckJSONLD to be false")
	}
	if rules.Hreflang.CheckHreflang {
		t.Error("expected default Hreflang.CheckHreflang to be false")
	}
	if rules.RobotsTxt.RequireSitemapLink {
		t.Error("expected default RobotsTxt.RequireSitemapLink to be false")
	}
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	// validConfig returns a minimal valid configuration.
	// Tests can modify specific fields to test validation rules.
	validConfig := func() *Config {
		cfg := NewConfig()
		cfg.DistPath = "dist"
		return cfg
	}

	t.Run("valid config returns nil", func(t *testing.T) {
		t.Parallel()
		if err := validConfig().Validate(); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("missing dist path returns ErrNoDistPath", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.DistPath = ""
		if err := cfg.Validate(); !errors.Is(err, ErrNoDistPath) {
			t.Errorf("expected ErrNoDistPath, got %v", err)
		}
	})

	t.Run("negative workers returns ErrInvalidWorkers", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Workers = -1
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidWorkers) {
			t.Errorf("expected ErrInvalidWorkers, got %v", err)
		}
	})

	t.Run("negative max errors returns ErrInvalidMaxErrors", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.MaxErrors = -1
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidMaxErrors) {
			t.Errorf("expected ErrInvalidMaxErrors, got %v", err)
		}
	})

	t.Run("both json and markdown returns ErrConflictingReportFormats", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.JSONReport = true
		cfg.MarkdownReport = true
		if err := cfg.Validate(); !errors.Is(err, ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("invalid trailing slash in rules is rejected", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Rules.URLNormalization.TrailingSlash = "sometimes"
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidTrailingSlash) {
			t.Errorf("expected ErrInvalidTrailingSlash, got %v", err)
		}
	})

	t.Run("invalid index html in rules is rejected", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Rules.URLNormalization.IndexHTML = "maybe"
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidIndexHTML) {
			t.Errorf("expected ErrInvalidIndexHTML, got %v", err)
		}
	})

	t.Run("relative base URL in rules is rejected", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Rules.Site.BaseURL = "/just/a/path"
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidBaseURL) {
			t.Errorf("expected ErrInvalidBaseURL, got %v", err)
		}
	})
}

// TestRulesPolicy verifies the string-to-enum conversion for the
// normalization policy.
func TestRulesPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		trailingSlash string
		indexHTML     string
		want          normalize.Policy
	}{
		{
			name:          "always forbid",
			trailingSlash: "always",
			indexHTML:     "forbid",
			want:          normalize.Policy{TrailingSlash: normalize.TrailingSlashAlways, IndexHTML: normalize.IndexHTMLForbid},
		},
		{
			name:          "never allow",
			trailingSlash: "never",
			indexHTML:     "allow",
			want:          normalize.Policy{TrailingSlash: normalize.TrailingSlashNever, IndexHTML: normalize.IndexHTMLAllow},
		},
		{
			name:          "ignore forbid",
			trailingSlash: "ignore",
			indexHTML:     "forbid",
			want:          normalize.Policy{TrailingSlash: normalize.TrailingSlashIgnore, IndexHTML: normalize.IndexHTMLForbid},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rules := DefaultRules()
			rules.URLNormalization.TrailingSlash = tt.trailingSlash
			rules.URLNormalization.IndexHTML = tt.indexHTML
			if got := rules.Policy(); got != tt.want {
				t.Errorf("Policy() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestLoadRulesFile verifies YAML decoding and the default-then-override
// behavior of the rules loader.
func TestLoadRulesFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file returns ErrRulesNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadRulesFile(filepath.Join(t.TempDir(), "nope.yml"))
		if !errors.Is(err, ErrRulesNotFound) {
			t.Errorf("expected ErrRulesNotFound, got %v", err)
		}
	})

	t.Run("partial file overrides only named keys", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultRulesFile)
		content := `site:
  base_url: https://example.com
url_normalization:
  trailing_slash: never
links:
  detect_orphan_pages: true
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		rules, err := LoadRulesFile(path)
		if err != nil {
			t.Fatalf("LoadRulesFile() error = %v", err)
		}
		if rules.Site.BaseURL != "https://example.com" {
			t.Errorf("BaseURL = %q, want %q", rules.Site.BaseURL, "https://example.com")
		}
		if rules.URLNormalization.TrailingSlash != "never" {
			t.Errorf("TrailingSlash = %q, want %q", rules.URLNormalization.TrailingSlash, "never")
		}
		// Defaults survive for keys the file does not name.
		if rules.URLNormalization.IndexHTML != "forbid" {
			t.Errorf("IndexHTML = %q, want default %q", rules.URLNormalization.IndexHTML, "forbid")
		}
		if !rules.Links.DetectOrphanPages {
			t.Error("expected DetectOrphanPages to be overridden to true")
		}
		if !rules.Links.CheckInternal {
			t.Error("expected CheckInternal default to survive a partial file")
		}
	})

	t.Run("invalid YAML returns an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultRulesFile)
		if err := os.WriteFile(path, []byte("links: [not a map"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadRulesFile(path); err == nil {
			t.Error("expected an error for invalid YAML")
		}
	})

	t.Run("invalid enum value is rejected on load", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultRulesFile)
		content := "url_normalization:\n  trailing_slash: banana\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadRulesFile(path); !errors.Is(err, ErrInvalidTrailingSlash) {
			t.Errorf("expected ErrInvalidTrailingSlash, got %v", err)
		}
	})
}

// TestFindRulesFile verifies the explicit-path branch of the search.
// The cwd/home fallbacks depend on ambient state and are not asserted here.
func TestFindRulesFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path is returned", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultRulesFile)
		if err := os.WriteFile(path, []byte("{}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if got := FindRulesFile(path); got != path {
			t.Errorf("FindRulesFile(%q) = %q, want %q", path, got, path)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing.yml")
		if got := FindRulesFile(path); got != "" {
			t.Errorf("FindRulesFile(%q) = %q, want empty", path, got)
		}
	})
}
