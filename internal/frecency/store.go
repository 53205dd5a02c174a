// Package frecency persists file-usage records and ranks them by a
// combination of use frequency and recency of last use. Frequency encodes
// durable importance; recency breaks ties among equally-frequent candidates.
package frecency

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"texoxide/internal/paths"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("no entry found")

// maxResults caps how many candidates a query returns.
const maxResults = 20

// Entry is one stored file-usage record.
type Entry struct {
	Path         string
	LastAccessed time.Time
	Frequency    int
}

// Store is the persistent frecency table. Multi-process safety comes from
// SQLite's own locking; the store performs no locking of its own.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("could not create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS files (
		path TEXT PRIMARY KEY,
		last_accessed DATETIME DEFAULT CURRENT_TIMESTAMP,
		frequency INTEGER DEFAULT 1
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("could not create database schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add records a use of the file at raw. The path must exist and is stored
// under its canonical identity. The insert-or-increment is a single atomic
// upsert so concurrent invocations sharing the database cannot race.
func (s *Store) Add(raw string) error {
	canonical, err := paths.Canonicalize(raw)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO files (path, frequency) VALUES (?, 1)
		 ON CONFLICT(path) DO UPDATE SET
		     frequency = frequency + 1,
		     last_accessed = CURRENT_TIMESTAMP`,
		canonical,
	)
	if err != nil {
		return fmt.Errorf("could not record %s: %w", canonical, err)
	}
	return nil
}

// Remove deletes the entry for raw. Canonicalization is best-effort: when it
// fails (the target may already be gone) the raw string is used as the key.
func (s *Store) Remove(raw string) error {
	key := paths.CanonicalizeLenient(raw)

	result, err := s.db.Exec("DELETE FROM files WHERE path = ?", key)
	if err != nil {
		return fmt.Errorf("could not remove %s: %w", key, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not remove %s: %w", key, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w for %s", ErrNotFound, raw)
	}
	return nil
}

// Cleanup deletes entries whose target no longer exists on disk. A failure
// on one row does not abort the pass.
func (s *Store) Cleanup() error {
	rows, err := s.db.Query("SELECT path FROM files")
	if err != nil {
		return fmt.Errorf("could not enumerate entries: %w", err)
	}

	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			continue
		}
		if !paths.Exists(path) {
			stale = append(stale, path)
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("could not enumerate entries: %w", err)
	}
	if err := rows.Close(); err != nil {
		return fmt.Errorf("could not enumerate entries: %w", err)
	}

	for _, path := range stale {
		_, _ = s.db.Exec("DELETE FROM files WHERE path = ?", path)
	}
	return nil
}

// Query returns stored paths containing term as a literal substring, most
// frecent first. An empty term matches every entry. At most 20 results.
func (s *Store) Query(term string) ([]string, error) {
	pattern := "%" + escapeLike(term) + "%"

	rows, err := s.db.Query(
		`SELECT path FROM files
		 WHERE path LIKE ? ESCAPE '\'
		 ORDER BY frequency DESC, last_accessed DESC
		 LIMIT ?`,
		pattern, maxResults,
	)
	if err != nil {
		return nil, fmt.Errorf("could not query entries: %w", err)
	}
	defer rows.Close()

	var results []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("could not read query results: %w", err)
		}
		results = append(results, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read query results: %w", err)
	}
	return results, nil
}

// Get returns the stored entry for the canonical identity of raw.
func (s *Store) Get(raw string) (Entry, error) {
	key := paths.CanonicalizeLenient(raw)

	var entry Entry
	err := s.db.QueryRow(
		"SELECT path, last_accessed, frequency FROM files WHERE path = ?",
		key,
	).Scan(&entry.Path, &entry.LastAccessed, &entry.Frequency)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w for %s", ErrNotFound, raw)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("could not look up %s: %w", key, err)
	}
	return entry, nil
}

// escapeLike makes term safe for literal use inside a LIKE pattern with
// ESCAPE '\'. User input containing %, _ or \ matches itself rather than
// acting as a wildcard.
func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}
