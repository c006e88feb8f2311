package vault

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
)

// Reference is one link to a file from a note.
type Reference struct {
	Source string `json:"source"`
	Embed  bool   `json:"embed"`
	Line   int    `json:"line"`
}

// Index maps every linked vault file to the notes that reference it.
type Index struct {
	refs map[string][]Reference
	// Documents is the number of notes scanned.
	Documents int
}

// ProgressFunc is called after each scanned note.
type ProgressFunc func(done, total int)

// resolver finds vault files for link targets.
type resolver struct {
	files  map[string]bool
	byBase map[string][]string
}

func newResolver(files []string) *resolver {
	r := &resolver{files: make(map[string]bool, len(files)), byBase: make(map[string][]string)}
	for _, f := range files {
		r.files[f] = true
		base := strings.ToLower(path.Base(f))
		r.byBase[base] = append(r.byBase[base], f)
		if IsMarkdown(f) {
			stem := strings.TrimSuffix(base, path.Ext(base))
			r.byBase[stem] = append(r.byBase[stem], f)
		}
	}
	return r
}

// resolve maps target, written in note from, onto a vault file. Targets
// are tried relative to the note, then to the vault root, then by a
// unique file name anywhere in the vault. Wikilinks may omit ".md".
func (r *resolver) resolve(from, target string) (string, bool) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", false
	}
	candidates := []string{target}
	if path.Ext(target) == "" {
		candidates = append(candidates, target+".md")
	}
	for _, c := range candidates {
		if strings.HasPrefix(c, "/") {
			if p := path.Clean(strings.TrimPrefix(c, "/")); r.files[p] {
				return p, true
			}
			continue
		}
		if p := path.Join(path.Dir(from), c); r.files[p] {
			return p, true
		}
		if p := path.Clean(c); r.files[p] {
			return p, true
		}
	}
	if matches := r.byBase[strings.ToLower(path.Base(target))]; len(matches) == 1 {
		return matches[0], true
	}
	return "", false
}

// BuildIndex reads every note and records what it links to.
func (v *Vault) BuildIndex(ctx context.Context, progress ProgressFunc) (*Index, error) {
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

	res := newResolver(files)
	idx := &Index{refs: make(map[string][]Reference), Documents: len(docs)}
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		abs, err := v.Abs(doc)
		if err != nil {
			return nil, err
		}
		src, err := os.ReadFile(abs)
		if err != nil {
			return nil, fmt.Errorf("vault: read %s: %w", doc, err)
		}
		for _, l := range ExtractLinks(src) {
			target, ok := res.resolve(doc, l.Target)
			if !ok {
				continue
			}
			idx.refs[target] = append(idx.refs[target], Reference{Source: doc, Embed: l.Embed, Line: l.Line})
		}
		if progress != nil {
			progress(i+1, len(docs))
		}
	}
	return idx, nil
}

// References returns the links to rel.
func (idx *Index) References(rel string) []Reference {
	return idx.refs[rel]
}

// Targets lists every file that has at least one reference.
func (idx *Index) Targets() []string {
	out := make([]string, 0, len(idx.refs))
	for t := range idx.refs {
		out = append(out, t)
	}
	return out
}

// ReferencesFor returns the references that count for asset rel. A
// custom-type asset is referenced through its cover file, so links to
// either are included.
func (v *Vault) ReferencesFor(idx *Index, rel string) []Reference {
	refs := append([]Reference(nil), idx.References(rel)...)
	if c, ok := v.Cover(rel); ok {
		refs = append(refs, idx.References(c)...)
	}
	return refs
}

// Backlinks lists the notes linking to rel, each once, in scan order.
func (v *Vault) Backlinks(ctx context.Context, rel string) ([]string, error) {
	clean, err := v.Clean(rel)
	if err != nil {
		return nil, err
	}
	idx, err := v.BuildIndex(ctx, nil)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var sources []string
	for _, r := range v.ReferencesFor(idx, clean) {
		if !seen[r.Source] {
			seen[r.Source] = true
			sources = append(sources, r.Source)
		}
	}
	return sources, nil
}
