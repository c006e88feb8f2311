package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/i18n"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Locale != "en" {
		t.Errorf("expected default locale %q, got %q", "en", cfg.Locale)
	}
	if cfg.DefaultKind != "flowchart" {
		t.Errorf("expected default kind %q, got %q", "flowchart", cfg.DefaultKind)
	}
	if cfg.Debounce() != 100*time.Millisecond {
		t.Errorf("expected 100ms debounce, got %v", cfg.Debounce())
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if !cfg.Assets.ConfirmDelete {
		t.Error("expected confirm_delete on by default")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.mstudio.yml")

	original := DefaultConfig()
	original.Locale = "zh"
	original.VaultDir = "/notes"
	original.DebounceMS = 250
	original.Gantt.TimeFormat = "time"
	original.Server.Port = 9000
	original.Assets.Include = []string{"attachments/**", "img/**"}
	original.Assets.CustomTypes = []CustomType{
		{Extension: "excalidraw", CoverExtension: "png", CoverFolder: "/covers", Enabled: true},
	}

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Locale != original.Locale {
		t.Errorf("locale: got %q, want %q", loaded.Locale, original.Locale)
	}
	if loaded.VaultDir != original.VaultDir {
		t.Errorf("vault_dir: got %q, want %q", loaded.VaultDir, original.VaultDir)
	}
	if loaded.DebounceMS != 250 {
		t.Errorf("debounce_ms: got %d", loaded.DebounceMS)
	}
	if loaded.Gantt.TimeFormat != "time" {
		t.Errorf("gantt.time_format: got %q", loaded.Gantt.TimeFormat)
	}
	if loaded.Server.Port != 9000 {
		t.Errorf("server.port: got %d", loaded.Server.Port)
	}
	if len(loaded.Assets.Include) != 2 || loaded.Assets.Include[1] != "img/**" {
		t.Errorf("assets.include: got %v", loaded.Assets.Include)
	}
	if len(loaded.Assets.CustomTypes) != 1 || loaded.Assets.CustomTypes[0] != original.Assets.CustomTypes[0] {
		t.Errorf("assets.custom_types: got %+v", loaded.Assets.CustomTypes)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.DefaultKind != "flowchart" {
		t.Errorf("expected default kind, got %q", cfg.DefaultKind)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("MSTUDIO_VAULT_DIR", "/env/vault")
	t.Setenv("MSTUDIO_SERVER__PORT", "7070")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.VaultDir != "/env/vault" {
		t.Errorf("env override failed: got %q", loaded.VaultDir)
	}
	if loaded.Server.Port != 7070 {
		t.Errorf("nested env override failed: got %d", loaded.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zh locale", func(c *Config) { c.Locale = "zh" }, false},
		{"unknown locale", func(c *Config) { c.Locale = "fr" }, true},
		{"empty vault", func(c *Config) { c.VaultDir = "" }, true},
		{"unknown kind", func(c *Config) { c.DefaultKind = "venn" }, true},
		{"negative debounce", func(c *Config) { c.DebounceMS = -1 }, true},
		{"bad direction", func(c *Config) { c.Flowchart.Direction = "BT" }, true},
		{"bad time format", func(c *Config) { c.Gantt.TimeFormat = "week" }, true},
		{"bad scheduling", func(c *Config) { c.Gantt.Scheduling = "auto" }, true},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, true},
		{"dotted extension", func(c *Config) {
			c.Assets.CustomTypes = []CustomType{{Extension: ".excalidraw", CoverExtension: "png"}}
		}, true},
		{"missing extension", func(c *Config) {
			c.Assets.CustomTypes = []CustomType{{CoverExtension: "png"}}
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStartingModel(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	loc := i18n.New("en")

	cfg := DefaultConfig()
	cfg.Flowchart.Direction = "LR"
	cfg.Gantt.TimeFormat = "time"
	cfg.Gantt.Scheduling = "dependency"

	m, err := cfg.StartingModel(diagrams.KindFlowchart, loc, now)
	if err != nil {
		t.Fatal(err)
	}
	if f := m.(diagrams.Flowchart); f.Direction != diagrams.DirectionLR {
		t.Errorf("flowchart direction = %q", f.Direction)
	}

	m, err = cfg.StartingModel(diagrams.KindGantt, loc, now)
	if err != nil {
		t.Fatal(err)
	}
	g := m.(diagrams.Gantt)
	if g.TimeFormat != diagrams.TimeFormatTime || g.Scheduling != diagrams.SchedulingDependency {
		t.Errorf("gantt mode = %s/%s", g.TimeFormat, g.Scheduling)
	}
	if len(g.Tasks) != 1 || g.Tasks[0].StartDate != "09:00" {
		t.Errorf("gantt tasks = %+v", g.Tasks)
	}

	if _, err := cfg.StartingModel("venn", loc, now); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestVaultOptions(t *testing.T) {
	a := AssetsConfig{
		Include:     []string{"img/**"},
		CustomTypes: []CustomType{{Extension: "drawio", CoverExtension: "svg", Enabled: true}},
	}
	opts := a.VaultOptions()
	if len(opts.Include) != 1 || len(opts.CustomTypes) != 1 || opts.CustomTypes[0].CoverExtension != "svg" {
		t.Errorf("VaultOptions = %+v", opts)
	}
}

func TestDetectVault(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".obsidian"), 0o755); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "notes", "daily")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	app, got := detectVault(sub)
	if app != "Obsidian" || got != root {
		t.Errorf("detectVault = %q, %q", app, got)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"img/**", []string{"img/**"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
