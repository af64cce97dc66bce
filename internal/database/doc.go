// Package database provides SQLite-based storage for distlint.
//
// This package implements the AuditDB, which stores complete audit
// reports so that successive runs can be compared: new findings,
// resolved findings, and severity trends over time.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
