package assets

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ziadkadry99/mermaid-studio/internal/db"
	"github.com/ziadkadry99/mermaid-studio/internal/vault"
)

// Store manages persistence of the asset reference index.
type Store struct {
	db *db.DB
}

// NewStore creates a new asset store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Replace swaps the whole index for the result of scan.
func (s *Store) Replace(ctx context.Context, scan Scan, entries []Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning scan transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM scans`); err != nil {
		return fmt.Errorf("clearing previous scan: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO scans (id, started_at, finished_at, documents, assets) VALUES (?, ?, ?, ?, ?)`,
		scan.ID, scan.StartedAt, scan.FinishedAt, scan.Documents, scan.Assets,
	); err != nil {
		return fmt.Errorf("inserting scan: %w", err)
	}

	assetStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO assets (path, size, modified, cover, scan_id) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing asset insert: %w", err)
	}
	defer assetStmt.Close()

	refStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO asset_references (asset, source, line, embed, ordinal) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing reference insert: %w", err)
	}
	defer refStmt.Close()

	for _, e := range entries {
		if _, err := assetStmt.ExecContext(ctx, e.Path, e.Size, unixOrZero(e.Modified), e.Cover, scan.ID); err != nil {
			return fmt.Errorf("inserting asset %s: %w", e.Path, err)
		}
		// Each occurrence is its own row; ordinal separates repeats on a line.
		seen := make(map[vault.Reference]int)
		for _, r := range e.Refs {
			key := vault.Reference{Source: r.Source, Line: r.Line}
			ordinal := seen[key]
			seen[key]++
			if _, err := refStmt.ExecContext(ctx, e.Path, r.Source, r.Line, r.Embed, ordinal); err != nil {
				return fmt.Errorf("inserting reference %s -> %s: %w", r.Source, e.Path, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing scan: %w", err)
	}
	return nil
}

// LastScan returns the stored scan, or nil before the first one.
func (s *Store) LastScan(ctx context.Context) (*Scan, error) {
	var sc Scan
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, documents, assets FROM scans ORDER BY finished_at DESC LIMIT 1`,
	).Scan(&sc.ID, &sc.StartedAt, &sc.FinishedAt, &sc.Documents, &sc.Assets)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting last scan: %w", err)
	}
	return &sc, nil
}

// List returns indexed assets with their reference counts, by path.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Asset, error) {
	query := `SELECT a.path, a.size, a.modified, a.cover, COUNT(r.source)
		 FROM assets a LEFT JOIN asset_references r ON r.asset = a.path
		 WHERE 1=1`
	args := []interface{}{}

	if filter.Prefix != "" {
		query += " AND a.path LIKE ? ESCAPE '\\'"
		args = append(args, escapeLike(filter.Prefix)+"%")
	}

	query += " GROUP BY a.path"
	if filter.Unused {
		query += " HAVING COUNT(r.source) = 0"
	}
	query += " ORDER BY a.path"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	defer rows.Close()

	var out []Asset
	for rows.Next() {
		var a Asset
		var modified int64
		if err := rows.Scan(&a.Path, &a.Size, &modified, &a.Cover, &a.References); err != nil {
			return nil, fmt.Errorf("scanning asset: %w", err)
		}
		a.Modified = fromUnix(modified)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Get returns one asset.
func (s *Store) Get(ctx context.Context, path string) (*Asset, error) {
	var a Asset
	var modified int64
	err := s.db.QueryRowContext(ctx,
		`SELECT a.path, a.size, a.modified, a.cover,
		        (SELECT COUNT(*) FROM asset_references r WHERE r.asset = a.path)
		 FROM assets a WHERE a.path = ?`, path,
	).Scan(&a.Path, &a.Size, &modified, &a.Cover, &a.References)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotIndexed, path)
	}
	if err != nil {
		return nil, fmt.Errorf("getting asset: %w", err)
	}
	a.Modified = fromUnix(modified)
	return &a, nil
}

// References returns the notes linking to path, by source and line.
func (s *Store) References(ctx context.Context, path string) ([]vault.Reference, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, line, embed FROM asset_references WHERE asset = ? ORDER BY source, line, ordinal`, path)
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}
	defer rows.Close()

	var out []vault.Reference
	for rows.Next() {
		var r vault.Reference
		if err := rows.Scan(&r.Source, &r.Line, &r.Embed); err != nil {
			return nil, fmt.Errorf("scanning reference: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Rename moves an indexed asset; its references follow.
func (s *Store) Rename(ctx context.Context, from, to, cover string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE assets SET path = ?, cover = ? WHERE path = ?`, to, cover, from)
	if err != nil {
		return fmt.Errorf("renaming asset: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotIndexed, from)
	}
	return nil
}

// Delete drops an asset and its references from the index.
func (s *Store) Delete(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM assets WHERE path = ?`, path); err != nil {
		return fmt.Errorf("deleting asset: %w", err)
	}
	return nil
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnix(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
