package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/i18n"
)

// EnvPrefix marks environment overrides, e.g. MSTUDIO_SERVER__PORT.
const EnvPrefix = "MSTUDIO_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (MSTUDIO_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// MSTUDIO_VAULT_DIR -> vault_dir, MSTUDIO_SERVER__PORT -> server.port.
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Locale != "" && !slices.Contains(i18n.Supported(), strings.ToLower(c.Locale)) {
		return fmt.Errorf("invalid locale %q: must be one of %s", c.Locale, strings.Join(i18n.Supported(), ", "))
	}

	if c.VaultDir == "" {
		return fmt.Errorf("vault_dir is required")
	}

	if c.DefaultKind != "" {
		if _, err := diagrams.ParseKind(c.DefaultKind); err != nil {
			return fmt.Errorf("invalid default_kind: %w", err)
		}
	}

	if c.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms must be non-negative")
	}

	switch diagrams.Direction(c.Flowchart.Direction) {
	case "", diagrams.DirectionTD, diagrams.DirectionLR:
	default:
		return fmt.Errorf("invalid flowchart.direction %q: must be TD or LR", c.Flowchart.Direction)
	}

	switch diagrams.TimeFormat(c.Gantt.TimeFormat) {
	case "", diagrams.TimeFormatDate, diagrams.TimeFormatTime:
	default:
		return fmt.Errorf("invalid gantt.time_format %q: must be date or time", c.Gantt.TimeFormat)
	}

	switch diagrams.Scheduling(c.Gantt.Scheduling) {
	case "", diagrams.SchedulingDates, diagrams.SchedulingDependency:
	default:
		return fmt.Errorf("invalid gantt.scheduling %q: must be dates or dependency", c.Gantt.Scheduling)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	for i, ct := range c.Assets.CustomTypes {
		if strings.TrimSpace(ct.Extension) == "" {
			return fmt.Errorf("assets.custom_types[%d]: extension is required", i)
		}
		if strings.HasPrefix(ct.Extension, ".") || strings.HasPrefix(ct.CoverExtension, ".") {
			return fmt.Errorf("assets.custom_types[%d]: extensions are written without a dot", i)
		}
	}

	return nil
}
