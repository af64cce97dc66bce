package discovery

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/karrick/godirwalk"
)

// FileEntry is one HTML file found under the dist directory.
type FileEntry struct {
	// RelPath is the path relative to the dist root, always with
	// forward slashes regardless of platform.
	RelPath string

	// AbsPath is the absolute filesystem path.
	AbsPath string
}

// DiscoverHTMLFiles walks distPath and returns every .html/.htm file,
// filtered by the include and exclude glob patterns. Include patterns
// select files (empty means all), then exclude patterns remove from
// that selection. Patterns match against the forward-slash relative
// path and support ** via doublestar.
//
// Symbolic links are not followed: a link pointing outside the dist
// directory would let the audit escape the build output, and build
// tools do not normally emit them.
//
// The walk is sorted, so the returned entries are deterministic. Route
// collision handling depends on this: the first file in sorted order
// wins a contested route.
//
// An invalid glob pattern is a hard error rather than a skipped
// filter, because silently auditing the wrong file set is worse than
// failing fast.
func DiscoverHTMLFiles(distPath string, include, exclude []string) ([]FileEntry, error) {
	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern %q", pattern)
		}
	}
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	root, err := filepath.Abs(distPath)
	if err != nil {
		return nil, fmt.Errorf("resolve dist path: %w", err)
	}

	var entries []FileEntry
	err = godirwalk.Walk(root, &godirwalk.Options{
		FollowSymbolicLinks: false,
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if !de.IsRegular() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(osPathname))
			if ext != ".html" && ext != ".htm" {
				return nil
			}

			rel, err := filepath.Rel(root, osPathname)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)

			if !matchAny(include, rel, true) {
				return nil
			}
			if matchAny(exclude, rel, false) {
				return nil
			}

			entries = append(entries, FileEntry{RelPath: rel, AbsPath: osPathname})
			return nil
		},
		// Permission errors on a subdirectory skip that subtree
		// instead of aborting the whole audit.
		ErrorCallback: func(_ string, _ error) godirwalk.ErrorAction {
			return godirwalk.SkipNode
		},
	})
	if err != nil {
		return nil, fmt.Errorf("walk dist directory: %w", err)
	}

	// The walk visits a directory's children before its sibling files,
	// so "about/index.html" would precede "about.html". Sort flat by
	// relative path so route collision ownership does not depend on
	// traversal shape.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RelPath < entries[j].RelPath
	})
	return entries, nil
}

// matchAny reports whether rel matches any of the patterns.
// emptyResult is returned for an empty pattern list: true for include
// (no filter selects everything), false for exclude (no filter removes
// nothing). Patterns were validated up front, so Match cannot fail here.
func matchAny(patterns []string, rel string, emptyResult bool) bool {
	if len(patterns) == 0 {
		return emptyResult
	}
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
