package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Rename gives rel a new file name in the same folder and returns the new
// vault path. The cover of a custom-type asset is renamed with it.
func (v *Vault) Rename(ctx context.Context, rel, newName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	newName = strings.TrimSpace(newName)
	if newName == "" || newName == "." || newName == ".." || strings.ContainsAny(newName, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, newName)
	}
	from, err := v.Clean(rel)
	if err != nil {
		return "", err
	}
	to := path.Join(path.Dir(from), newName)
	if to == from {
		return from, nil
	}
	if v.exists(to) {
		return "", fmt.Errorf("%w: %s", ErrExists, to)
	}

	cover, hasCover := v.Cover(from)
	if err := v.move(from, to); err != nil {
		return "", err
	}
	if hasCover {
		ct, _ := v.CustomTypeFor(to)
		if err := v.move(cover, CoverPath(to, ct)); err != nil {
			return to, fmt.Errorf("vault: renaming cover: %w", err)
		}
	}
	return to, nil
}

// Trash moves rel into the vault's .trash folder, along with the cover of
// a custom-type asset. It returns where the file ended up.
func (v *Vault) Trash(ctx context.Context, rel string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	from, err := v.Clean(rel)
	if err != nil {
		return "", err
	}
	if !v.exists(from) {
		return "", fmt.Errorf("vault: trash %s: %w", from, fs.ErrNotExist)
	}
	cover, hasCover := v.Cover(from)

	dest, err := v.trashPath(from)
	if err != nil {
		return "", err
	}
	if err := v.move(from, dest); err != nil {
		return "", err
	}
	if hasCover {
		coverDest, err := v.trashPath(cover)
		if err != nil {
			return dest, err
		}
		if err := v.move(cover, coverDest); err != nil {
			return dest, fmt.Errorf("vault: trashing cover: %w", err)
		}
	}
	return dest, nil
}

// trashPath picks a free name under .trash for rel.
func (v *Vault) trashPath(rel string) (string, error) {
	base := path.Base(rel)
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	candidate := path.Join(TrashDir, base)
	for i := 1; v.exists(candidate); i++ {
		if i > 10000 {
			return "", errors.New("vault: no free name in trash")
		}
		candidate = path.Join(TrashDir, fmt.Sprintf("%s %d%s", stem, i, ext))
	}
	return candidate, nil
}

func (v *Vault) move(from, to string) error {
	src, err := v.Abs(from)
	if err != nil {
		return err
	}
	dst, err := v.Abs(to)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("vault: create %s: %w", path.Dir(to), err)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("vault: move %s to %s: %w", from, to, err)
	}
	return nil
}
