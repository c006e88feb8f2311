package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupWorkspace writes a vault with one note and a config pointing at it.
func setupWorkspace(t *testing.T) (cfgPath, vaultDir string) {
	t.Helper()
	dir := t.TempDir()
	vaultDir = filepath.Join(dir, "vault")
	if err := os.MkdirAll(vaultDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(vaultDir, "note.md"), []byte("# Note\nbody\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath = filepath.Join(dir, ".mstudio.yml")
	cfg := "locale: en\nvault_dir: " + vaultDir + "\ndata_dir: " + filepath.Join(dir, "data") + "\ndefault_kind: pie\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath, vaultDir
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

// execute runs the root command and restores the flags it may have set.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		cfgFile = ""
		verbose = false
		for _, f := range []string{"model", "fence", "lang"} {
			generateCmd.Flags().Set(f, generateCmd.Flags().Lookup(f).DefValue)
		}
		for _, f := range []string{"model", "line", "end-line"} {
			insertCmd.Flags().Set(f, insertCmd.Flags().Lookup(f).DefValue)
		}
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	cfgPath, _ := setupWorkspace(t)
	bare := writeFile(t, "pie.json", `{"title":"Pets","items":[{"label":"Dogs","value":3}]}`)
	doc := writeFile(t, "doc.yml", "kind: mindmap\nmodel:\n  tree:\n    - text: Root\n      level: 0\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "bare model",
			args: []string{"generate", "pie", "--model", bare},
			want: "pie\n  title Pets\n  \"Dogs\" : 3\n",
		},
		{
			name: "document fenced",
			args: []string{"generate", "--model", doc, "--fence"},
			want: "```mermaid\nmindmap\n  Root\n\n```\n\n",
		},
		{
			name: "localized fallback",
			args: []string{"generate", "mindmap", "--model", writeFile(t, "empty.json", `{"tree":"none"}`), "--lang", "zh"},
			want: "mindmap\n  根节点\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, append(tt.args, "--config", cfgPath)...)
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateCommandUnknownKind(t *testing.T) {
	cfgPath, _ := setupWorkspace(t)
	if _, err := execute(t, "generate", "venn", "--config", cfgPath); err == nil {
		t.Error("expected an error for an unknown kind")
	}
}

func TestInsertCommand(t *testing.T) {
	cfgPath, vaultDir := setupWorkspace(t)
	model := writeFile(t, "pie.json", `{"items":[{"label":"A","value":1}]}`)

	if _, err := execute(t, "insert", "note.md", "pie", "--model", model, "--line", "2", "--config", cfgPath); err != nil {
		t.Fatalf("insert: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(vaultDir, "note.md"))
	if err != nil {
		t.Fatal(err)
	}
	want := "# Note\n```mermaid\npie\n  \"A\" : 1\n\n```\n\nbody\n"
	if string(data) != want {
		t.Errorf("note = %q, want %q", data, want)
	}
}

func TestInsertCommandErrors(t *testing.T) {
	cfgPath, _ := setupWorkspace(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "end line without line", args: []string{"insert", "note.md", "--end-line", "3"}, want: "--end-line needs --line"},
		{name: "outside vault", args: []string{"insert", "../escape.md"}, want: "outside the vault"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append(tt.args, "--config", cfgPath)...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}
