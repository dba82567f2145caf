package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// SQLiteBackend stores each collection as one JSON document row.
type SQLiteBackend struct {
	db *sqlx.DB
}

func OpenSQLite(dsn string) (*SQLiteBackend, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// One connection: keeps ":memory:" databases coherent and serializes writers.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping sqlite")
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteBackend{db: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS collections(
  name TEXT PRIMARY KEY,
  body TEXT NOT NULL,
  updated_at TEXT
);
`
	_, err := db.Exec(schema)
	return errors.Wrap(err, "ensure schema")
}

func (b *SQLiteBackend) ReadCollection(ctx context.Context, name Collection) ([]json.RawMessage, error) {
	var body string
	err := b.db.GetContext(ctx, &body, `SELECT body FROM collections WHERE name = ?`, string(name))
	if errors.Is(err, sql.ErrNoRows) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select %s", name)
	}
	var out []json.RawMessage
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, errors.Wrapf(err, "decode %s", name)
	}
	if out == nil {
		out = []json.RawMessage{}
	}
	return out, nil
}

func (b *SQLiteBackend) WriteCollection(ctx context.Context, name Collection, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	body, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encode %s", name)
	}
	_, err = b.db.ExecContext(ctx, `
		INSERT INTO collections(name, body, updated_at)
		VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP
	`, string(name), string(body))
	return errors.Wrapf(err, "upsert %s", name)
}

func (b *SQLiteBackend) Close() error { return b.db.Close() }
