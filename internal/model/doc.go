// Package model defines the core data types shared across distlint:
// severity levels, findings, pages, and the audit report.
package model
