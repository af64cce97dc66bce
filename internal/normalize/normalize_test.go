package normalize

import "testing"

func TestCollapseDots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want string
	}{
		{"no dots", "/a/b/c", "/a/b/c"},
		{"single dot removed", "/a/./b", "/a/b"},
		{"double dot pops segment", "/a/b/../c", "/a/c"},
		{"double dot clamps at root", "/../../a", "/a"},
		{"relative path", "a/../b", "b"},
		{"trailing slash kept as empty segment", "/a/b/", "/a/b/"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CollapseDots(tt.path); got != tt.want {
				t.Errorf("CollapseDots(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		path   string
		policy Policy
		want   string
	}{
		{
			name:   "index.html stripped and slash appended",
			path:   "/about/index.html",
			policy: Policy{TrailingSlashAlways, IndexHTMLForbid},
			want:   "/about/",
		},
		{
			name:   "trailing slash stripped under never",
			path:   "/about/",
			policy: Policy{TrailingSlashNever, IndexHTMLForbid},
			want:   "/about",
		},
		{
			name:   "root index.html is the root",
			path:   "/index.html",
			policy: Policy{TrailingSlashAlways, IndexHTMLForbid},
			want:   "/",
		},
		{
			name:   "root never gains or loses its slash",
			path:   "/",
			policy: Policy{TrailingSlashNever, IndexHTMLForbid},
			want:   "/",
		},
		{
			name:   "index.html kept when allowed",
			path:   "/about/index.html",
			policy: Policy{TrailingSlashNever, IndexHTMLAllow},
			want:   "/about/index.html",
		},
		{
			name:   "ignore leaves slash as written",
			path:   "/about",
			policy: Policy{TrailingSlashIgnore, IndexHTMLForbid},
			want:   "/about",
		},
		{
			name:   "dot segments collapsed",
			path:   "/blog/../about/./index.html",
			policy: Policy{TrailingSlashAlways, IndexHTMLForbid},
			want:   "/about/",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Path(tt.path, tt.policy)
			if got != tt.want {
				t.Errorf("Path(%q, %v) = %q, want %q", tt.path, tt.policy, got, tt.want)
			}

			// Normalization is idempotent for every policy.
			if again := Path(got, tt.policy); again != got {
				t.Errorf("Path not idempotent: Path(%q) = %q", got, again)
			}
		})
	}
}

func TestFileToRoute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		relPath string
		policy  Policy
		want    string
	}{
		{
			name:    "nested index file",
			relPath: "about/index.html",
			policy:  Policy{TrailingSlashAlways, IndexHTMLForbid},
			want:    "/about/",
		},
		{
			name:    "root index file",
			relPath: "index.html",
			policy:  Policy{TrailingSlashAlways, IndexHTMLForbid},
			want:    "/",
		},
		{
			name:    "named page",
			relPath: "blog/2024/my-post.html",
			policy:  Policy{TrailingSlashAlways, IndexHTMLForbid},
			want:    "/blog/2024/my-post/",
		},
		{
			name:    "named page without trailing slash",
			relPath: "blog/2024/my-post.html",
			policy:  Policy{TrailingSlashNever, IndexHTMLForbid},
			want:    "/blog/2024/my-post",
		},
		{
			name:    "htm extension",
			relPath: "legacy.htm",
			policy:  Policy{TrailingSlashAlways, IndexHTMLForbid},
			want:    "/legacy/",
		},
		{
			name:    "windows separators",
			relPath: `about\index.html`,
			policy:  Policy{TrailingSlashAlways, IndexHTMLForbid},
			want:    "/about/",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FileToRoute(tt.relPath, tt.policy); got != tt.want {
				t.Errorf("FileToRoute(%q, %v) = %q, want %q", tt.relPath, tt.policy, got, tt.want)
			}
		})
	}
}

func TestURL(t *testing.T) {
	t.Parallel()

	policy := DefaultPolicy()

	tests := []struct {
		name   string
		rawURL string
		want   string
	}{
		{"path normalized", "https://example.com/about/index.html", "https://example.com/about/"},
		{"query preserved", "https://example.com/about?x=1", "https://example.com/about/?x=1"},
		{"unparsable input returned unchanged", "https://exa mple.com/%zz", "https://exa mple.com/%zz"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := URL(tt.rawURL, policy); got != tt.want {
				t.Errorf("URL(%q) = %q, want %q", tt.rawURL, got, tt.want)
			}
		})
	}
}

func TestToAbsolute(t *testing.T) {
	t.Parallel()

	got, ok := ToAbsolute("/about/", "https://example.com")
	if !ok || got != "https://example.com/about/" {
		t.Errorf("ToAbsolute() = %q, %v", got, ok)
	}
}
