package vault

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are folder names never descended into.
var DefaultExcludes = []string{
	".git",
	".obsidian",
	TrashDir,
	"node_modules",
	".DS_Store",
}

func shouldExcludeDir(name string) bool {
	for _, excl := range DefaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

// MatchesInclude returns true if relPath matches any of the include
// patterns. If patterns is empty, everything is included.
func MatchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// MatchesExclude returns true if relPath matches any of the exclude
// patterns. If patterns is empty, nothing is excluded.
func MatchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// matchesAny tries each pattern against the whole path and the file name.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	base := filepath.Base(normalized)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

// Files lists every regular file in the vault, sorted, skipping the
// default excluded folders. The include and exclude options do not apply.
func (v *Vault) Files(ctx context.Context) ([]string, error) {
	var files []string
	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != v.root && shouldExcludeDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(v.root, p)
		if err != nil {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("vault: walk: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// Documents lists the markdown notes.
func (v *Vault) Documents(ctx context.Context) ([]string, error) {
	files, err := v.Files(ctx)
	if err != nil {
		return nil, err
	}
	var docs []string
	for _, f := range files {
		if IsMarkdown(f) {
			docs = append(docs, f)
		}
	}
	return docs, nil
}

// Assets lists the images and custom-type files that pass the include
// and exclude patterns. Cover files of custom types are not listed on
// their own.
func (v *Vault) Assets(ctx context.Context) ([]string, error) {
	files, err := v.Files(ctx)
	if err != nil {
		return nil, err
	}
	covers := make(map[string]bool)
	for _, f := range files {
		if c, ok := v.Cover(f); ok {
			covers[c] = true
		}
	}

	var assets []string
	for _, f := range files {
		if covers[f] || !v.IsAsset(f) {
			continue
		}
		if !MatchesInclude(f, v.opts.Include) || MatchesExclude(f, v.opts.Exclude) {
			continue
		}
		assets = append(assets, f)
	}
	return assets, nil
}
