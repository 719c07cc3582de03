package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS published_posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source_url TEXT NOT NULL,
    media_kind TEXT NOT NULL,
    attachments TEXT NOT NULL,
    wall_post_id INTEGER NOT NULL,
    title TEXT NOT NULL,
    published_at TEXT NOT NULL
);
`

// Record is one published post.
type Record struct {
	ID          int64
	SourceURL   string
	MediaKind   string
	Attachments string
	WallPostID  int64
	Title       string
	PublishedAt time.Time
}

// Store persists publish records in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("history path required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout = 5000"} {
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

func (s *Store) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create history schema: %w", err)
	}

	var version int
	err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("write schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("history db has schema version %d, expected %d (delete %s to recreate)", version, schemaVersion, s.path)
	}
	return nil
}

// Add inserts one publish record.
func (s *Store) Add(ctx context.Context, rec Record) (int64, error) {
	publishedAt := rec.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO published_posts (source_url, media_kind, attachments, wall_post_id, title, published_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		rec.SourceURL, rec.MediaKind, rec.Attachments, rec.WallPostID, rec.Title,
		publishedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert publish record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// List returns the most recent records, newest first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT id, source_url, media_kind, attachments, wall_post_id, title, published_at
              FROM published_posts ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var publishedAt string
		if err := rows.Scan(&rec.ID, &rec.SourceURL, &rec.MediaKind, &rec.Attachments, &rec.WallPostID, &rec.Title, &publishedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		if ts, parseErr := time.Parse(time.RFC3339Nano, publishedAt); parseErr == nil {
			rec.PublishedAt = ts
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return records, nil
}
