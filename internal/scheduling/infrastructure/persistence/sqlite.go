package persistence

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	estimated_minutes INTEGER NOT NULL,
	priority TEXT NOT NULL,
	deadline TEXT,
	divisible INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS commitments (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	date TEXT NOT NULL,
	start_minutes INTEGER,
	end_minutes INTEGER,
	fixed INTEGER NOT NULL DEFAULT 1,
	priority INTEGER NOT NULL DEFAULT 3,
	completed INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_commitments_date ON commitments(date);
`

// OpenSQLite opens (and creates if needed) the local SQLite store and
// applies the schema.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}
	return db, nil
}
