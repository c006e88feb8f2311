package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// FileName is the database file inside the data directory.
const FileName = "assets.db"

// DB wraps a sql.DB with mermaid-studio helpers.
type DB struct {
	*sql.DB
	path string
}

// Open creates or opens a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	d := &DB{DB: sqlDB, path: path}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// OpenMemory creates an in-memory SQLite database (useful for testing).
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	d := &DB{DB: sqlDB, path: ":memory:"}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// Path returns the database file, or ":memory:".
func (d *DB) Path() string { return d.path }

// migrate runs all schema migrations.
func (d *DB) migrate() error {
	if err := d.dropOutdatedReferences(); err != nil {
		return err
	}
	_, err := d.Exec(schema)
	return err
}

// dropOutdatedReferences removes a reference table created before
// repeated links were counted, together with its scan. The next scan
// rebuilds both.
func (d *DB) dropOutdatedReferences() error {
	var tables int
	if err := d.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'asset_references'`,
	).Scan(&tables); err != nil {
		return fmt.Errorf("inspecting schema: %w", err)
	}
	if tables == 0 {
		return nil
	}
	var cols int
	if err := d.QueryRow(
		`SELECT COUNT(*) FROM pragma_table_info('asset_references') WHERE name = 'ordinal'`,
	).Scan(&cols); err != nil {
		return fmt.Errorf("inspecting asset_references: %w", err)
	}
	if cols > 0 {
		return nil
	}
	if _, err := d.Exec(`DROP TABLE asset_references; DELETE FROM scans;`); err != nil {
		return fmt.Errorf("dropping outdated asset_references: %w", err)
	}
	return nil
}

// schema contains the full database schema. New tables are added here.
const schema = `
CREATE TABLE IF NOT EXISTS scans (
    id TEXT PRIMARY KEY,
    started_at DATETIME NOT NULL,
    finished_at DATETIME NOT NULL,
    documents INTEGER NOT NULL DEFAULT 0,
    assets INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_scans_finished ON scans(finished_at);

CREATE TABLE IF NOT EXISTS assets (
    path TEXT PRIMARY KEY,
    size INTEGER NOT NULL DEFAULT 0,
    modified INTEGER NOT NULL DEFAULT 0,
    cover TEXT NOT NULL DEFAULT '',
    scan_id TEXT NOT NULL REFERENCES scans(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS asset_references (
    asset TEXT NOT NULL REFERENCES assets(path) ON DELETE CASCADE ON UPDATE CASCADE,
    source TEXT NOT NULL,
    line INTEGER NOT NULL DEFAULT 0,
    embed INTEGER NOT NULL DEFAULT 0,
    ordinal INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY(asset, source, line, ordinal)
);

CREATE INDEX IF NOT EXISTS idx_asset_references_source ON asset_references(source);
`
