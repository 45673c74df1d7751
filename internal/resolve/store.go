package resolve

import (
	"context"
	"crypto/sha256"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current cache schema version. Bump this when the
// schema changes; old databases are cheap to rebuild from the network.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Status classifies a cache entry.
type Status string

const (
	// StatusResolved marks an entry holding a real payload.
	StatusResolved Status = "resolved"
	// StatusUnknown is the explicit sentinel for "we asked and got nothing";
	// its presence suppresses further fetch attempts for the key.
	StatusUnknown Status = "unknown"
)

// Entry is one persisted resolution outcome.
type Entry struct {
	Source    string
	Term      string
	Status    Status
	Value     string
	FetchedAt time.Time
}

// Known reports whether the entry carries a resolved payload.
func (e Entry) Known() bool { return e.Status == StatusResolved }

// Key returns the stable content hash used to address a term within a source
// namespace. The hash, not the raw term, is the persisted key, so terms of
// any length or script address fixed-size keys.
func Key(source, term string) string {
	sum := sha256.Sum256([]byte(source + "\x00" + term))
	return hex.EncodeToString(sum[:])[:16]
}

// Store manages resolution cache persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore initializes or connects to the cache database at path and applies
// the schema.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var version int
	err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("%w: database has version %d, expected %d (run 'kotoba cache clear' or delete %s)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// Get returns the persisted entry for (source, term) if one exists.
func (s *Store) Get(ctx context.Context, source, term string) (Entry, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT term, status, value, fetched_at FROM cache_entries WHERE source = ? AND key_hash = ?`,
		source, Key(source, term),
	)

	var entry Entry
	var fetchedAt string
	err := row.Scan(&entry.Term, (*string)(&entry.Status), &entry.Value, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("read cache entry: %w", err)
	}

	entry.Source = source
	if ts, parseErr := time.Parse(time.RFC3339Nano, fetchedAt); parseErr == nil {
		entry.FetchedAt = ts
	}
	return entry, true, nil
}

// Put inserts or replaces the entry for (source, term).
func (s *Store) Put(ctx context.Context, entry Entry) error {
	if entry.FetchedAt.IsZero() {
		entry.FetchedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO cache_entries (source, key_hash, term, status, value, fetched_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Source,
		Key(entry.Source, entry.Term),
		entry.Term,
		string(entry.Status),
		entry.Value,
		entry.FetchedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("persist cache entry: %w", err)
	}
	return nil
}

// SourceStats summarizes one cache namespace.
type SourceStats struct {
	Source   string
	Resolved int
	Unknown  int
}

// Stats returns per-source entry counts ordered by source name.
func (s *Store) Stats(ctx context.Context) ([]SourceStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source,
                SUM(CASE WHEN status = 'resolved' THEN 1 ELSE 0 END),
                SUM(CASE WHEN status = 'unknown' THEN 1 ELSE 0 END)
         FROM cache_entries GROUP BY source ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("query cache stats: %w", err)
	}
	defer rows.Close()

	var stats []SourceStats
	for rows.Next() {
		var st SourceStats
		if err := rows.Scan(&st.Source, &st.Resolved, &st.Unknown); err != nil {
			return nil, fmt.Errorf("scan cache stats: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// Clear removes every entry, or only one source's entries when source is
// non-empty.
func (s *Store) Clear(ctx context.Context, source string) error {
	var err error
	if source == "" {
		_, err = s.db.ExecContext(ctx, "DELETE FROM cache_entries")
	} else {
		_, err = s.db.ExecContext(ctx, "DELETE FROM cache_entries WHERE source = ?", source)
	}
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}
