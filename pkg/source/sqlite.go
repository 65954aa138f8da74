package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	pnio "github.com/matzehuels/packnav/pkg/io"
	"github.com/matzehuels/packnav/pkg/pack"
)

// SQLiteScheme prefixes store keys in node URLs.
const SQLiteScheme = "sqlite://"

const schema = `CREATE TABLE IF NOT EXISTS payloads (
	key        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	nodes      INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Entry describes one stored payload.
type Entry struct {
	Key       string
	Nodes     int
	UpdatedAt time.Time
}

// SQLiteStore keeps payloads in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens, creating if needed, the store at path. Use ":memory:"
// for a throwaway store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Key strips the sqlite:// prefix from a node URL.
func Key(rawURL string) string {
	return strings.TrimPrefix(rawURL, SQLiteScheme)
}

// Put stores tree under key, replacing any previous payload.
func (s *SQLiteStore) Put(ctx context.Context, key string, tree *pack.Node) error {
	key = strings.TrimSpace(Key(key))
	if key == "" {
		return fmt.Errorf("payload key is required")
	}
	if err := pack.Validate(tree); err != nil {
		return err
	}
	body, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO payloads (key, body, nodes, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, nodes = excluded.nodes, updated_at = excluded.updated_at`,
		key, body, tree.Count(), time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("put payload: %w", err)
	}
	return nil
}

// Fetch implements Fetcher for sqlite:// URLs and bare keys.
func (s *SQLiteStore) Fetch(ctx context.Context, rawURL string) (*pack.Node, error) {
	key := Key(rawURL)
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM payloads WHERE key = ?`, key).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, rawURL)
	}
	if err != nil {
		return nil, fmt.Errorf("get payload: %w", err)
	}
	return pnio.ParseJSON(body)
}

// Delete removes the payload under key and reports whether one existed.
func (s *SQLiteStore) Delete(ctx context.Context, key string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM payloads WHERE key = ?`, Key(key))
	if err != nil {
		return false, fmt.Errorf("delete payload: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// List returns every stored payload ordered by key.
func (s *SQLiteStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, nodes, updated_at FROM payloads ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list payloads: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var updated int64
		if err := rows.Scan(&e.Key, &e.Nodes, &updated); err != nil {
			return nil, fmt.Errorf("scan payload: %w", err)
		}
		e.UpdatedAt = time.UnixMilli(updated).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
