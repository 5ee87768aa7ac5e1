// Package storage provides JSON-based persistence for exam catalog snapshots.
//
// A snapshot is the catalog in its interchange form, stored as exams.json in
// the data directory (~/.local/share/exam-calendar by default). It lets the
// CLI answer queries without fetching the calendar page again.
package storage
