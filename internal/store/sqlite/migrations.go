package sqlite

import (
	"context"
	"fmt"
)

// schema mirrors the PostgreSQL schema. amount is stored as TEXT so the
// decimal's exact representation survives (pgtype.Numeric scans from text).
const schema = `
CREATE TABLE IF NOT EXISTS lists (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS names (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    name     TEXT NOT NULL UNIQUE,
    count    INTEGER NOT NULL DEFAULT 1,
    category TEXT
);

CREATE TABLE IF NOT EXISTS items (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    name        TEXT NOT NULL,
    amount      TEXT,
    amount_unit TEXT,
    in_cart     INTEGER NOT NULL DEFAULT 0,
    list        INTEGER NOT NULL,
    category    TEXT,
    FOREIGN KEY (list) REFERENCES lists(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_items_list ON items(list);
CREATE INDEX IF NOT EXISTS idx_items_name ON items(name);
CREATE INDEX IF NOT EXISTS idx_items_category ON items(category);
CREATE INDEX IF NOT EXISTS idx_names_category ON names(category);
`

// Migrate executes the schema setup.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Reset deletes every row and restarts the AUTOINCREMENT counters.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	const reset = `
DELETE FROM items;
DELETE FROM names;
DELETE FROM categories;
DELETE FROM lists;
DELETE FROM sqlite_sequence;
`
	if _, err := s.db.ExecContext(ctx, reset); err != nil {
		return fmt.Errorf("reset tables: %w", err)
	}
	return nil
}
