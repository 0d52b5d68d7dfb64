package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a single SQLite table holding JSON field
// bags. Field values round-trip through encoding/json, so numbers come back
// as float64 and nested values as map[string]any / []any.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite-backed document store at the given path.
// If path is ":memory:", uses an in-memory database. Sets WAL mode, enables
// foreign keys, and runs migrations.
func Open(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// migrations are idempotent and re-run on every open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		key        TEXT NOT NULL,
		fields     TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (collection, key)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection)`,
}

func migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, collection, key string) (*Document, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT fields FROM documents WHERE collection = ? AND key = ?`,
		collection, key,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, collection, key)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document %s/%s: %w", collection, key, err)
	}

	fields, err := decodeFields(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding document %s/%s: %w", collection, key, err)
	}
	return &Document{Key: key, Fields: fields}, nil
}

func (s *SQLiteStore) Put(ctx context.Context, collection, key string, fields map[string]any) error {
	raw, err := encodeFields(fields)
	if err != nil {
		return fmt.Errorf("encoding document %s/%s: %w", collection, key, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, key, fields, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (collection, key) DO UPDATE SET fields = excluded.fields, updated_at = excluded.updated_at`,
		collection, key, raw, now, now,
	)
	if err != nil {
		return fmt.Errorf("putting document %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *SQLiteStore) UpdateFields(ctx context.Context, collection, key string, partial map[string]any) error {
	doc, err := s.Get(ctx, collection, key)
	if err != nil {
		return err
	}
	for k, v := range partial {
		doc.Fields[k] = v
	}

	raw, err := encodeFields(doc.Fields)
	if err != nil {
		return fmt.Errorf("encoding document %s/%s: %w", collection, key, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx,
		`UPDATE documents SET fields = ?, updated_at = ? WHERE collection = ? AND key = ?`,
		raw, now, collection, key,
	)
	if err != nil {
		return fmt.Errorf("updating document %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, collection, key string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND key = ?`,
		collection, key,
	)
	if err != nil {
		return fmt.Errorf("deleting document %s/%s: %w", collection, key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document %s/%s: %w", collection, key, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, key)
	}
	return nil
}

func (s *SQLiteStore) Query(ctx context.Context, collection string, pred Predicate) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, fields FROM documents WHERE collection = ?`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("querying collection %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("scanning document in %s: %w", collection, err)
		}
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding document %s/%s: %w", collection, key, err)
		}
		doc := Document{Key: key, Fields: fields}
		if pred == nil || pred(doc) {
			docs = append(docs, doc)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collection %s: %w", collection, err)
	}
	return docs, nil
}

func encodeFields(fields map[string]any) (string, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeFields(raw string) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}
