// Package activity keeps a lightweight edit history for the trip:
// which section changed, in which share mode, and when. It is display
// data only; nothing in the trip document depends on it.
package activity

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Event is one recorded edit.
type Event struct {
	ID        int64  `json:"id"`
	Mode      string `json:"mode"`
	Section   string `json:"section"`
	Summary   string `json:"summary"`
	CreatedAt string `json:"createdAt"`
}

// Store wraps the activity SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the activity database at path.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
	`); err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    mode TEXT NOT NULL,
    section TEXT NOT NULL,
    summary TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_created ON events(created_at);
`)
	return err
}

// Record inserts an event stamped with the current UTC time.
func (s *Store) Record(mode, section, summary string) error {
	_, err := s.db.Exec(`INSERT INTO events (mode, section, summary, created_at) VALUES (?, ?, ?, ?)`,
		mode, section, summary, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Recent returns the latest limit events, newest first.
func (s *Store) Recent(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`SELECT id, mode, section, summary, created_at FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Mode, &e.Section, &e.Summary, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// DeleteOlderThan removes events older than keepDays days and returns
// how many were deleted.
func (s *Store) DeleteOlderThan(keepDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -keepDays).Format(time.RFC3339)
	res, err := s.db.Exec(`DELETE FROM events WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartRetentionSweep deletes old events every interval until the
// returned stop function is called.
func (s *Store) StartRetentionSweep(keepDays int, interval time.Duration) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_, _ = s.DeleteOlderThan(keepDays)
			}
		}
	}()
	return func() { close(done) }
}
