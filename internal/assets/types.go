// Package assets keeps a sqlite index of which vault files are linked from
// notes, so unused images can be listed, renamed and trashed.
package assets

import (
	"errors"
	"time"

	"github.com/ziadkadry99/mermaid-studio/internal/vault"
)

var (
	// ErrNotIndexed is returned for a path the last scan did not record.
	ErrNotIndexed = errors.New("asset not indexed")
	// ErrConfirmRequired is returned by Trash when deletes must be
	// confirmed and the caller did not.
	ErrConfirmRequired = errors.New("delete must be confirmed")
)

// Asset is one indexed file and how many times notes link to it.
type Asset struct {
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	Modified   time.Time `json:"modified"`
	Cover      string    `json:"cover,omitempty"`
	References int       `json:"references"`
}

// Scan summarises one indexing run.
type Scan struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Documents  int       `json:"documents"`
	Assets     int       `json:"assets"`
}

// ListFilter narrows Store.List.
type ListFilter struct {
	Unused bool
	Prefix string
	Limit  int
	Offset int
}

// Entry is an asset with the references found for it, as written by a scan.
type Entry struct {
	Asset
	Refs []vault.Reference
}
