package checks

import (
	"context"
	"testing"

	"github.com/distlint/distlint/internal/config"
)

func TestHreflangCheck(t *testing.T) {
	t.Parallel()

	t.Run("pages without hreflang produce no findings", func(t *testing.T) {
		t.Parallel()

		idx := buildIndex(t, map[string]string{
			"index.html": page(`<a href="/">Home</a>`),
		}, "https://example.com")

		rules := config.DefaultRules()
		rules.Hreflang.RequireXDefault = true
		rules.Hreflang.RequireSelfReference = true
		rules.Hreflang.RequireReciprocal = true
		findings := (&HreflangCheck{}).Run(context.Background(), idx, rules)
		if len(findings) != 0 {
			t.Errorf("no hreflang tags should mean no findings: %+v", findings)
		}
	})

	t.Run("missing x-default is flagged", func(t *testing.T) {
		t.Parallel()

		idx := buildIndex(t, map[string]string{
			"index.html": canonicalPage(
				`<link rel="canonical" href="https://example.com/">` +
					`<link rel="alternate" hreflang="en" href="https://example.com/">` +
					`<link rel="alternate" hreflang="de" href="https://example.com/de/">`),
			"de/index.html": canonicalPage(`<link rel="canonical" href="https://example.com/de/">`),
		}, "https://example.com")

		rules := config.DefaultRules()
		rules.Hreflang.RequireXDefault = true
		findings := (&HreflangCheck{}).Run(context.Background(), idx, rules)
		if len(findingsForRule(findings, "hreflang/no-x-default")) != 1 {
			t.Errorf("expected one hreflang/no-x-default finding: %+v", findings)
		}
	})

	t.Run("missing self-reference is flagged", func(t *testing.T) {
		t.Parallel()

		idx := buildIndex(t, map[string]string{
			"index.html": canonicalPage(
				`<link rel="canonical" href="https://example.com/">` +
					`<link rel="alternate" hreflang="de" href="https://example.com/de/">`),
		}, "https://example.com")

		rules := config.DefaultRules()
		rules.Hreflang.RequireSelfReference = true
		findings := (&HreflangCheck{}).Run(context.Background(), idx, rules)
		if len(findingsForRule(findings, "hreflang/no-self-reference")) != 1 {
			t.Errorf("expected one hreflang/no-self-reference finding: %+v", findings)
		}
	})

	t.Run("self-reference check is skipped without base URL", func(t *testing.T) {
		t.Parallel()

		idx := buildIndex(t, map[string]string{
			"index.html": canonicalPage(
				`<link rel="alternate" hreflang="de" href="https://example.com/de/">`),
		}, "")

		rules := config.DefaultRules()
		rules.Hreflang.RequireSelfReference = true
		findings := (&HreflangCheck{}).Run(context.Background(), idx, rules)
		if len(findingsForRule(findings, "hreflang/no-self-reference")) != 0 {
			t.Errorf("check needs a base URL; got findings: %+v", findings)
		}
	})

	t.Run("missing reciprocal link yields exactly one finding", func(t *testing.T) {
		t.Parallel()

		idx := buildIndex(t, map[string]string{
			// The English page declares the German alternate...
			"index.html": canonicalPage(
				`<link rel="canonical" href="https://example.com/">` +
					`<link rel="alternate" hreflang="en" href="https://example.com/">` +
					`<link rel="alternate" hreflang="de" href="https://example.com/de/">`),
			// ...but the German page only declares itself.
			"de/index.html": canonicalPage(
				`<link rel="canonical" href="https://example.com/de/">` +
					`<link rel="alternate" hreflang="de" href="https://example.com/de/">`),
		}, "https://example.com")

		rules := config.DefaultRules()
		rules.Hreflang.RequireReciprocal = true
		findings := (&HreflangCheck{}).Run(context.Background(), idx, rules)

		reciprocal := findingsForRule(findings, "hreflang/no-reciprocal")
		if len(reciprocal) != 1 {
			t.Fatalf("got %d hreflang/no-reciprocal findings, want 1: %+v", len(reciprocal), reciprocal)
		}
		if reciprocal[0].File != "index.html" {
			t.Errorf("finding file = %q, want index.html", reciprocal[0].File)
		}
	})

	t.Run("reciprocal pair produces no findings", func(t *testing.T) {
		t.Parallel()

		idx := buildIndex(t, map[string]string{
			"index.html": canonicalPage(
				`<link rel="canonical" href="https://example.com/">` +
					`<link rel="alternate" hreflang="en" href="https://example.com/">` +
					`<link rel="alternate" hreflang="de" href="https://example.com/de/">`),
			"de/index.html": canonicalPage(
				`<link rel="canonical" href="https://example.com/de/">` +
					`<link rel="alternate" hreflang="de" href="https://example.com/de/">` +
					`<link rel="alternate" hreflang="en" href="https://example.com/">`),
		}, "https://example.com")

		rules := config.DefaultRules()
		rules.Hreflang.RequireReciprocal = true
		findings := (&HreflangCheck{}).Run(context.Background(), idx, rules)
		if len(findingsForRule(findings, "hreflang/no-reciprocal")) != 0 {
			t.Errorf("reciprocal pair should be clean: %+v", findings)
		}
	})
}
