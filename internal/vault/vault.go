// Package vault works on a folder of markdown notes: inserting diagrams
// into documents, finding which notes link to a file, and renaming or
// trashing files the way a notes app does.
package vault

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var (
	// ErrOutsideVault is returned for a path that escapes the vault root.
	ErrOutsideVault = errors.New("path is outside the vault")
	// ErrInvalidName is returned by Rename for a name that is empty or
	// contains a path separator.
	ErrInvalidName = errors.New("invalid file name")
	// ErrExists is returned when a rename target is already taken.
	ErrExists = errors.New("file already exists")
)

// TrashDir is the vault-relative folder that trashed files move to.
const TrashDir = ".trash"

// ImageExtensions are the asset types recognised without configuration.
var ImageExtensions = []string{"png", "jpg", "jpeg", "gif", "bmp", "svg", "webp", "avif", "ico", "tif", "tiff"}

// CustomType is a non-image asset shown through a cover image, such as an
// .excalidraw drawing with an exported .png next to it.
type CustomType struct {
	Extension      string `yaml:"extension" json:"extension"`
	CoverExtension string `yaml:"cover_extension" json:"cover_extension"`
	// CoverFolder holds covers instead of the asset's own folder. A leading
	// slash makes it vault-relative, otherwise it is relative to the asset.
	CoverFolder string `yaml:"cover_folder,omitempty" json:"cover_folder,omitempty"`
	Enabled     bool   `yaml:"enabled" json:"enabled"`
}

// Options narrows which files the vault scans.
type Options struct {
	Include     []string
	Exclude     []string
	CustomTypes []CustomType
}

// Vault is a notes folder on disk. Paths passed in and returned are
// vault-relative with forward slashes.
type Vault struct {
	root string
	opts Options
}

// Open returns the vault rooted at dir.
func Open(dir string, opts Options) (*Vault, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("vault: resolve root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault: %s is not a directory", root)
	}
	return &Vault{root: root, opts: opts}, nil
}

// Root returns the absolute vault directory.
func (v *Vault) Root() string { return v.root }

// Abs maps a vault-relative path to an absolute one.
func (v *Vault) Abs(rel string) (string, error) {
	clean, err := v.Clean(rel)
	if err != nil {
		return "", err
	}
	return filepath.Join(v.root, filepath.FromSlash(clean)), nil
}

// Clean normalises rel and rejects paths that leave the vault.
func (v *Vault) Clean(rel string) (string, error) {
	p := filepath.ToSlash(rel)
	// Absolute paths under the root are accepted; any other leading slash
	// means vault-relative.
	if filepath.IsAbs(rel) && (rel == v.root || strings.HasPrefix(rel, v.root+string(filepath.Separator))) {
		r, err := filepath.Rel(v.root, rel)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrOutsideVault, rel)
		}
		p = filepath.ToSlash(r)
	}
	p = path.Clean(strings.TrimPrefix(p, "/"))
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("%w: %s", ErrOutsideVault, rel)
	}
	return p, nil
}

func (v *Vault) exists(rel string) bool {
	abs, err := v.Abs(rel)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && info.Mode().IsRegular()
}

// CustomTypeFor returns the enabled custom type for rel's extension.
func (v *Vault) CustomTypeFor(rel string) (CustomType, bool) {
	ext := fileExt(rel)
	for _, ct := range v.opts.CustomTypes {
		if ct.Enabled && ct.Extension != "" && strings.EqualFold(ct.Extension, ext) {
			return ct, true
		}
	}
	return CustomType{}, false
}

// CoverPath returns where the cover of a custom-type asset lives.
func CoverPath(rel string, ct CustomType) string {
	dir := path.Dir(rel)
	if dir == "." {
		dir = ""
	}
	base := strings.TrimSuffix(path.Base(rel), path.Ext(rel))

	coverDir := dir
	if folder := strings.TrimSpace(ct.CoverFolder); folder != "" {
		if strings.HasPrefix(folder, "/") {
			coverDir = strings.TrimPrefix(folder, "/")
		} else {
			coverDir = path.Join(dir, folder)
		}
	}
	return path.Join(coverDir, base+"."+ct.CoverExtension)
}

// Cover returns the cover file of rel and whether it exists.
func (v *Vault) Cover(rel string) (string, bool) {
	ct, ok := v.CustomTypeFor(rel)
	if !ok || ct.CoverExtension == "" {
		return "", false
	}
	c := CoverPath(rel, ct)
	return c, v.exists(c)
}

func fileExt(p string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
}

// IsMarkdown reports whether rel is a note.
func IsMarkdown(rel string) bool {
	ext := fileExt(rel)
	return ext == "md" || ext == "markdown"
}

// IsAsset reports whether rel is an image or an enabled custom type.
func (v *Vault) IsAsset(rel string) bool {
	ext := fileExt(rel)
	for _, e := range ImageExtensions {
		if e == ext {
			return true
		}
	}
	_, ok := v.CustomTypeFor(rel)
	return ok
}
