package tripkit

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = sql.ErrNoRows

// tripKey is the single well-known key the canonical trip document
// lives under.
const tripKey = "trip"

// Store wraps a SQLite database holding the canonical trip document and
// hero image metadata.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets handlers read while a commit is in flight; busy_timeout
	// makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
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
CREATE TABLE IF NOT EXISTS documents (
    key TEXT PRIMARY KEY,
    body TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS hero_images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

// LoadTrip reads the canonical trip document. ErrNotFound when no trip
// has been created yet. A stored body that no longer parses is treated
// like overlay corruption: the broken document is discarded and
// ErrNotFound is returned so the caller reseeds from defaults.
func (s *Store) LoadTrip() (*Trip, error) {
	var body string
	err := s.db.QueryRow(`SELECT body FROM documents WHERE key = ?`, tripKey).Scan(&body)
	if err != nil {
		return nil, err
	}
	var t Trip
	if err := json.Unmarshal([]byte(body), &t); err != nil {
		log.Printf("tripkit: stored trip unparsable, discarding: %v", err)
		if _, derr := s.db.Exec(`DELETE FROM documents WHERE key = ?`, tripKey); derr != nil {
			return nil, derr
		}
		return nil, ErrNotFound
	}
	return &t, nil
}

// SaveTrip replaces the canonical trip document in a single upsert.
// This is the atomic whole-document commit: readers see either the
// previous document or the new one, never a partial state.
func (s *Store) SaveTrip(t *Trip) error {
	if t == nil {
		return errors.New("tripkit: nil trip")
	}
	body, err := json.Marshal(t)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO documents (key, body) VALUES (?, ?)`, tripKey, string(body))
	return err
}

// DeleteTrip removes the canonical trip document.
func (s *Store) DeleteTrip() error {
	_, err := s.db.Exec(`DELETE FROM documents WHERE key = ?`, tripKey)
	return err
}

// HeroImage is the stored metadata for an uploaded, resized hero image.
type HeroImage struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Size         int    `json:"size"`
	UploadedAt   string `json:"uploadedAt"`
}

// SaveImage upserts hero image metadata.
func (s *Store) SaveImage(img HeroImage) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO hero_images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns all uploaded hero images, newest first.
func (s *Store) ListImages() ([]HeroImage, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM hero_images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []HeroImage
	for rows.Next() {
		var img HeroImage
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteImage removes hero image metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM hero_images WHERE filename = ?`, filename)
	return err
}
