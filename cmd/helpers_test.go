package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ziadkadry99/mermaid-studio/internal/config"
	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/i18n"
)

func TestReadModel(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}
	doc := write("doc.yml", "kind: pie\nmodel:\n  items:\n    - label: A\n      value: 1\n")
	bare := write("bare.json", `{"items":[{"label":"B","value":2}]}`)

	cfg := config.DefaultConfig()
	cfg.DefaultKind = "pie"
	loc := i18n.New("en")

	tests := []struct {
		name     string
		kind     string
		path     string
		wantKind diagrams.Kind
		want     string
		wantErr  bool
	}{
		{name: "document names its kind", kind: "flowchart", path: doc, wantKind: diagrams.KindPie, want: "pie\n  \"A\" : 1\n"},
		{name: "bare model with kind", kind: "pie", path: bare, wantKind: diagrams.KindPie, want: "pie\n  \"B\" : 2\n"},
		{name: "bare model uses default kind", path: bare, wantKind: diagrams.KindPie, want: "pie\n  \"B\" : 2\n"},
		{name: "no file gives starting model", kind: "mindmap", wantKind: diagrams.KindMindmap},
		{name: "unknown kind", kind: "venn", wantErr: true},
		{name: "missing file", kind: "pie", path: filepath.Join(dir, "nope.yml"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, m, err := readModel(cfg, loc, tt.kind, tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", kind, tt.wantKind)
			}
			if tt.want != "" {
				if got := diagrams.Generate(kind, m); got != tt.want {
					t.Errorf("code = %q, want %q", got, tt.want)
				}
			}
			if m == nil {
				t.Error("nil model")
			}
		})
	}
}
