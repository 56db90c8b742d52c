package postgres

import (
	"context"
	"fmt"
)

// schema creates the four tables. category and name columns on items/names
// are plain text, not foreign keys; only items.list references another table.
const schema = `
CREATE TABLE IF NOT EXISTS lists (
    id   BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
    id   BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS names (
    id       BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    name     TEXT NOT NULL UNIQUE,
    count    BIGINT NOT NULL DEFAULT 1,
    category TEXT
);

CREATE TABLE IF NOT EXISTS items (
    id          BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    name        TEXT NOT NULL,
    amount      NUMERIC,
    amount_unit TEXT,
    in_cart     BOOLEAN NOT NULL DEFAULT FALSE,
    list        BIGINT NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
    category    TEXT
);

CREATE INDEX IF NOT EXISTS idx_items_list ON items(list);
CREATE INDEX IF NOT EXISTS idx_items_name ON items(name);
CREATE INDEX IF NOT EXISTS idx_items_category ON items(category);
CREATE INDEX IF NOT EXISTS idx_names_category ON names(category);
`

// Migrate creates the schema. Exec without arguments uses the simple
// protocol, which accepts multiple statements.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Reset truncates every table and restarts the identity sequences.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `TRUNCATE items, names, categories, lists RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}
