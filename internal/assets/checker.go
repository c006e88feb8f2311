package assets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/mermaid-studio/internal/vault"
)

// Checker scans a vault into a Store and applies file operations to both.
type Checker struct {
	vault *vault.Vault
	store *Store
	// ConfirmDelete makes Trash refuse unless the caller confirmed.
	ConfirmDelete bool
	now           func() time.Time
}

// NewChecker creates a Checker for v backed by store.
func NewChecker(v *vault.Vault, store *Store, confirmDelete bool) *Checker {
	return &Checker{vault: v, store: store, ConfirmDelete: confirmDelete, now: time.Now}
}

// Vault returns the scanned vault.
func (c *Checker) Vault() *vault.Vault { return c.vault }

// Store returns the backing index.
func (c *Checker) Store() *Store { return c.store }

// Scan reads every note, resolves its links and replaces the index.
func (c *Checker) Scan(ctx context.Context, progress vault.ProgressFunc) (*Scan, error) {
	started := c.now().UTC()
	idx, err := c.vault.BuildIndex(ctx, progress)
	if err != nil {
		return nil, fmt.Errorf("indexing vault: %w", err)
	}
	paths, err := c.vault.Assets(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}

	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		e := Entry{Asset: Asset{Path: p}, Refs: c.vault.ReferencesFor(idx, p)}
		if abs, err := c.vault.Abs(p); err == nil {
			if info, err := os.Stat(abs); err == nil {
				e.Size = info.Size()
				e.Modified = info.ModTime()
			}
		}
		if cover, ok := c.vault.Cover(p); ok {
			e.Cover = cover
		}
		e.References = len(e.Refs)
		entries = append(entries, e)
	}

	scan := Scan{
		ID:         uuid.New().String(),
		StartedAt:  started,
		FinishedAt: c.now().UTC(),
		Documents:  idx.Documents,
		Assets:     len(entries),
	}
	if err := c.store.Replace(ctx, scan, entries); err != nil {
		return nil, err
	}
	log.Printf("assets: scanned %d notes, %d assets", scan.Documents, scan.Assets)
	return &scan, nil
}

// Unused lists assets no note links to, as of the last scan.
func (c *Checker) Unused(ctx context.Context) ([]Asset, error) {
	return c.store.List(ctx, ListFilter{Unused: true})
}

// Rename renames rel within its folder and updates the index.
func (c *Checker) Rename(ctx context.Context, rel, newName string) (string, error) {
	clean, err := c.vault.Clean(rel)
	if err != nil {
		return "", err
	}
	to, err := c.vault.Rename(ctx, clean, newName)
	if err != nil {
		return "", err
	}
	cover, _ := c.vault.Cover(to)
	if err := c.store.Rename(ctx, clean, to, cover); err != nil && !errors.Is(err, ErrNotIndexed) {
		return to, err
	}
	return to, nil
}

// Trash moves rel, and its cover, to the vault trash and drops it from
// the index.
func (c *Checker) Trash(ctx context.Context, rel string, confirmed bool) (string, error) {
	if c.ConfirmDelete && !confirmed {
		return "", ErrConfirmRequired
	}
	clean, err := c.vault.Clean(rel)
	if err != nil {
		return "", err
	}
	dest, err := c.vault.Trash(ctx, clean)
	if err != nil {
		return "", err
	}
	if err := c.store.Delete(ctx, clean); err != nil {
		return dest, err
	}
	return dest, nil
}
