// Package sqlite provides a SQLite-backed expansion cache.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SchemaVersion is the current schema version.
const SchemaVersion = "1"

// Cache implements ports.ExpansionCache on a SQLite database.
type Cache struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates or opens a cache database at path. Use ":memory:" for a
// private in-process database.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS expansions (
			fingerprint TEXT PRIMARY KEY,
			expanded TEXT NOT NULL,
			length INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	c := &Cache{db: db}
	if err := c.checkVersion(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) checkVersion() error {
	var version string
	err := c.db.QueryRow(`SELECT value FROM metadata WHERE key = 'schema_version'`).Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		_, err = c.db.Exec(`INSERT INTO metadata (key, value) VALUES ('schema_version', ?)`, SchemaVersion)
		if err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case version != SchemaVersion:
		return fmt.Errorf("unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}
	return nil
}

// Get returns the cached expansion.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expanded string
	err := c.db.QueryRowContext(ctx, `SELECT expanded FROM expansions WHERE fingerprint = ?`, key).Scan(&expanded)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read expansion: %w", err)
	}
	return expanded, true, nil
}

// Put stores the expansion.
func (c *Cache) Put(ctx context.Context, key, expanded string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO expansions (fingerprint, expanded, length, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET expanded = excluded.expanded, length = excluded.length, created_at = excluded.created_at
	`, key, expanded, len(expanded), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to store expansion: %w", err)
	}
	return nil
}

// Delete removes the entry.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.ExecContext(ctx, `DELETE FROM expansions WHERE fingerprint = ?`, key); err != nil {
		return fmt.Errorf("failed to delete expansion: %w", err)
	}
	return nil
}

// List returns the stored fingerprints, oldest first.
func (c *Cache) List(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.db.QueryContext(ctx, `SELECT fingerprint FROM expansions ORDER BY created_at, fingerprint`)
	if err != nil {
		return nil, fmt.Errorf("failed to list expansions: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}
