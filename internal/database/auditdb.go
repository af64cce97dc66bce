package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/distlint/distlint/internal/model"
)

// AuditDB provides SQLite-based storage for audit reports.
// It manages connection pooling and provides methods for saving and
// retrieving historical audit results.
//
// Design decision: We use a single database file for all audited sites
// rather than one file per site. This keeps history queries for the
// compare command in one place and simplifies backup/restore.
type AuditDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures AuditDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an AuditDB at the specified path.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*AuditDB, error) {
	dbPath := filepath.Join(dbDir, "distlint.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single pooled connection avoids
	// SQLITE_BUSY under concurrent use.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := &AuditDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := adb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return adb, nil
}

// Close closes the database connection.
func (adb *AuditDB) Close() error {
	return adb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (adb *AuditDB) createTables() error {
	schema := `
	-- Audit reports store complete audit results as JSON
	CREATE TABLE IF NOT EXISTS audit_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		site TEXT NOT NULL,
		dist_path TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		pages_checked INTEGER DEFAULT 0,
		report_json TEXT NOT NULL,
		severity_summary TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_reports_site ON audit_reports(site);
	CREATE INDEX IF NOT EXISTS idx_reports_timestamp ON audit_reports(timestamp);
	`

	_, err := adb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveAuditReport saves a complete audit report as JSON.
func (adb *AuditDB) SaveAuditReport(ctx context.Context, report *model.AuditReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	summary := map[string]int{
		"error":   report.Errors(),
		"warning": report.Warnings(),
		"info":    report.Infos(),
	}
	summaryJSON, _ := json.Marshal(summary) //nolint:errcheck,errchkjson // summary is a simple map; Marshal won't fail

	query := `
	INSERT INTO audit_reports (site, dist_path, pages_checked, report_json, severity_summary)
	VALUES (?, ?, ?, ?, ?)
	`

	_, err = adb.db.ExecContext(ctx, query,
		report.Site,
		report.DistPath,
		report.PagesChecked,
		string(reportJSON),
		string(summaryJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save audit report: %w", err)
	}

	return nil
}

// GetLatestAuditReport retrieves the most recent audit report for a site.
// Returns nil without error when the site has no history.
func (adb *AuditDB) GetLatestAuditReport(ctx context.Context, site string) (*model.AuditReport, error) {
	query := `
	SELECT report_json FROM audit_reports
	WHERE site = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`

	var reportJSON string
	err := adb.db.QueryRowContext(ctx, query, site).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit report: %w", err)
	}

	var report model.AuditReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// ListAuditedSites returns a list of all sites with stored reports.
func (adb *AuditDB) ListAuditedSites(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT site FROM audit_reports
	ORDER BY site
	`

	rows, err := adb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	var sites []string
	for rows.Next() {
		var site string
		if err := rows.Scan(&site); err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, site)
	}

	return sites, rows.Err()
}

// GetAuditHistory retrieves all audit reports for a site, newest first.
func (adb *AuditDB) GetAuditHistory(ctx context.Context, site string) ([]*model.AuditReport, error) {
	query := `
	SELECT report_json FROM audit_reports
	WHERE site = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := adb.db.QueryContext(ctx, query, site)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit history: %w", err)
	}
	defer rows.Close()

	var reports []*model.AuditReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		var report model.AuditReport
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			continue // Skip malformed reports
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

// AuditReportMetadata contains summary information about a stored report.
// This is used for displaying audit history without loading full reports.
type AuditReportMetadata struct {
	// ID is the unique identifier of the report in the database.
	ID int64

	// Site is the audited site.
	Site string

	// Timestamp is when the audit was performed.
	Timestamp time.Time

	// PagesChecked is the number of HTML pages the audit covered.
	PagesChecked int

	// SeveritySummary contains counts of findings by severity level.
	SeveritySummary map[string]int
}

// GetAuditHistoryWithMetadata retrieves audit report metadata for a site.
// This is more efficient than GetAuditHistory when only metadata is needed.
func (adb *AuditDB) GetAuditHistoryWithMetadata(ctx context.Context, site string) ([]AuditReportMetadata, error) {
	query := `
	SELECT id, site, timestamp, pages_checked, severity_summary
	FROM audit_reports
	WHERE site = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := adb.db.QueryContext(ctx, query, site)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit history: %w", err)
	}
	defer rows.Close()

	var results []AuditReportMetadata
	for rows.Next() {
		var meta AuditReportMetadata
		var timestamp string
		var summaryJSON sql.NullString

		if err := rows.Scan(&meta.ID, &meta.Site, &timestamp, &meta.PagesChecked, &summaryJSON); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)

		if summaryJSON.Valid && summaryJSON.String != "" {
			if err := json.Unmarshal([]byte(summaryJSON.String), &meta.SeveritySummary); err != nil {
				meta.SeveritySummary = make(map[string]int)
			}
		} else {
			meta.SeveritySummary = make(map[string]int)
		}

		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetAuditReportByID retrieves an audit report by its database ID.
// Returns nil without error when no report has that ID.
func (adb *AuditDB) GetAuditReportByID(ctx context.Context, id int64) (*model.AuditReport, error) {
	query := `
	SELECT report_json FROM audit_reports
	WHERE id = ?
	`

	var reportJSON string
	err := adb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit report: %w", err)
	}

	var report model.AuditReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
