package db

import (
	"path/filepath"
	"testing"
)

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	// Verify tables exist by counting rows in each one.
	tables := []string{"scans", "assets", "asset_references"}

	for _, table := range tables {
		var count int
		err := d.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	// Running migrate again should not fail.
	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer d.Close()
	if d.Path() != path {
		t.Errorf("Path() = %q", d.Path())
	}
}

func TestReferencesCascade(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	stmts := []string{
		`INSERT INTO scans (id, started_at, finished_at) VALUES ('s1', datetime('now'), datetime('now'))`,
		`INSERT INTO assets (path, scan_id) VALUES ('a.png', 's1')`,
		`INSERT INTO asset_references (asset, source, line) VALUES ('a.png', 'n.md', 1)`,
		`UPDATE assets SET path = 'b.png' WHERE path = 'a.png'`,
	}
	for _, s := range stmts {
		if _, err := d.Exec(s); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
	}
	var asset string
	if err := d.QueryRow(`SELECT asset FROM asset_references`).Scan(&asset); err != nil || asset != "b.png" {
		t.Errorf("rename did not cascade: %q %v", asset, err)
	}

	if _, err := d.Exec(`DELETE FROM scans`); err != nil {
		t.Fatal(err)
	}
	var n int
	d.QueryRow(`SELECT COUNT(*) FROM asset_references`).Scan(&n)
	if n != 0 {
		t.Errorf("delete did not cascade, %d references left", n)
	}
}

func TestMigrateDropsReferencesWithoutOrdinal(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	stmts := []string{
		`DROP TABLE asset_references`,
		`CREATE TABLE asset_references (asset TEXT NOT NULL, source TEXT NOT NULL, line INTEGER NOT NULL DEFAULT 0,
			embed INTEGER NOT NULL DEFAULT 0, PRIMARY KEY(asset, source, line))`,
		`INSERT INTO scans (id, started_at, finished_at) VALUES ('s1', datetime('now'), datetime('now'))`,
		`INSERT INTO asset_references (asset, source, line) VALUES ('a.png', 'n.md', 1)`,
	}
	for _, s := range stmts {
		if _, err := d.Exec(s); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
	}

	if err := d.migrate(); err != nil {
		t.Fatalf("migrate() error: %v", err)
	}
	if _, err := d.Exec(`INSERT INTO asset_references (asset, source, line, ordinal) VALUES ('a.png', 'n.md', 1, 1)`); err == nil {
		t.Error("insert without a scanned asset should fail the foreign key")
	}
	var scans int
	if err := d.QueryRow(`SELECT COUNT(*) FROM scans`).Scan(&scans); err != nil || scans != 0 {
		t.Errorf("stale scan kept: %d %v", scans, err)
	}
	var cols int
	if err := d.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('asset_references') WHERE name = 'ordinal'`).Scan(&cols); err != nil || cols != 1 {
		t.Errorf("ordinal column missing: %d %v", cols, err)
	}
}
