package config

import "github.com/ziadkadry99/mermaid-studio/internal/vault"

// Config is the top-level mermaid-studio configuration, corresponding to .mstudio.yml.
type Config struct {
	Locale      string          `yaml:"locale" koanf:"locale"`
	VaultDir    string          `yaml:"vault_dir" koanf:"vault_dir"`
	DataDir     string          `yaml:"data_dir" koanf:"data_dir"`
	DefaultKind string          `yaml:"default_kind" koanf:"default_kind"`
	DebounceMS  int             `yaml:"debounce_ms" koanf:"debounce_ms"`
	Flowchart   FlowchartConfig `yaml:"flowchart" koanf:"flowchart"`
	Gantt       GanttConfig     `yaml:"gantt" koanf:"gantt"`
	Server      ServerConfig    `yaml:"server" koanf:"server"`
	Assets      AssetsConfig    `yaml:"assets" koanf:"assets"`
}

// FlowchartConfig holds defaults for new flowcharts.
type FlowchartConfig struct {
	Direction string `yaml:"direction" koanf:"direction"`
}

// GanttConfig holds defaults for new gantt charts.
type GanttConfig struct {
	TimeFormat string `yaml:"time_format" koanf:"time_format"`
	Scheduling string `yaml:"scheduling" koanf:"scheduling"`
}

// ServerConfig holds settings for the local editor server.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// AssetsConfig controls the unused-asset scan.
type AssetsConfig struct {
	Include       []string     `yaml:"include" koanf:"include"`
	Exclude       []string     `yaml:"exclude" koanf:"exclude"`
	CustomTypes   []CustomType `yaml:"custom_types" koanf:"custom_types"`
	ConfirmDelete bool         `yaml:"confirm_delete" koanf:"confirm_delete"`
}

// CustomType is a non-image asset with an optional cover image.
type CustomType struct {
	Extension      string `yaml:"extension" koanf:"extension"`
	CoverExtension string `yaml:"cover_extension" koanf:"cover_extension"`
	CoverFolder    string `yaml:"cover_folder,omitempty" koanf:"cover_folder"`
	Enabled        bool   `yaml:"enabled" koanf:"enabled"`
}

// VaultOptions converts the asset settings for vault.Open.
func (a AssetsConfig) VaultOptions() vault.Options {
	opts := vault.Options{Include: a.Include, Exclude: a.Exclude}
	for _, ct := range a.CustomTypes {
		opts.CustomTypes = append(opts.CustomTypes, vault.CustomType{
			Extension:      ct.Extension,
			CoverExtension: ct.CoverExtension,
			CoverFolder:    ct.CoverFolder,
			Enabled:        ct.Enabled,
		})
	}
	return opts
}
