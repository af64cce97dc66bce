// Package log provides logging functionality for distlint, built on top
// of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic rewriting of absolute dist paths to dist-relative form
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Path Rewriting
//
// Audit log lines frequently mention files inside the audited dist
// directory. The absolute machine path (home directory, CI workspace)
// is noise for the reader and differs between machines, which makes log
// output hard to diff across runs. The PathHandler rewrites any string
// attribute that starts with the dist root to the dist-relative path.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose, log.WithDistPath(distPath))
//	slog.SetDefault(logger)
//
//	logger.Info("page extracted",
//	    "file", "/home/ci/site/dist/blog/index.html", // logged as "blog/index.html"
//	)
package log
