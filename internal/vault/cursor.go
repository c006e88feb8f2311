package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Inserter receives text to place into a document.
type Inserter interface {
	Insert(ctx context.Context, text string) error
}

// Cursor is a position in a markdown note. With Line zero the text is
// appended. With EndLine at or after Line the lines Line..EndLine are
// replaced, like typing over a selection. Otherwise the text goes in
// before Line. Lines are 1-based.
type Cursor struct {
	Path    string
	Line    int
	EndLine int
}

// Cursor returns an inserter for the note rel inside the vault.
func (v *Vault) Cursor(rel string, line, endLine int) (*Cursor, error) {
	abs, err := v.Abs(rel)
	if err != nil {
		return nil, err
	}
	return &Cursor{Path: abs, Line: line, EndLine: endLine}, nil
}

// Insert writes text at the cursor. A missing file is created.
func (c *Cursor) Insert(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(c.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("vault: read %s: %w", c.Path, err)
	}
	out := insertText(string(data), text, c.Line, c.EndLine)

	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return fmt.Errorf("vault: create folder: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(c.Path), ".insert-*")
	if err != nil {
		return fmt.Errorf("vault: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(out); err != nil {
		tmp.Close()
		return fmt.Errorf("vault: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("vault: write: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.Path); err != nil {
		return fmt.Errorf("vault: replace %s: %w", c.Path, err)
	}
	return nil
}

func insertText(doc, text string, line, endLine int) string {
	if line <= 0 {
		if doc != "" && !strings.HasSuffix(doc, "\n") {
			doc += "\n"
		}
		return doc + text
	}

	lines := strings.SplitAfter(doc, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	start := min(line-1, len(lines))
	end := start
	if endLine >= line {
		end = min(endLine, len(lines))
	}

	var b strings.Builder
	for _, l := range lines[:start] {
		b.WriteString(l)
	}
	if start > 0 && !strings.HasSuffix(lines[start-1], "\n") {
		b.WriteString("\n")
	}
	b.WriteString(text)
	for _, l := range lines[end:] {
		b.WriteString(l)
	}
	return b.String()
}
