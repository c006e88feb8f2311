package config

import (
	"time"

	"github.com/ziadkadry99/mermaid-studio/internal/debounce"
	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/edit"
	"github.com/ziadkadry99/mermaid-studio/internal/editor"
	"github.com/ziadkadry99/mermaid-studio/internal/i18n"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".mstudio.yml"

// DefaultCustomTypes are asset types recognised out of the box but left
// disabled until the user turns them on.
var DefaultCustomTypes = []CustomType{
	{Extension: "excalidraw", CoverExtension: "png", Enabled: false},
	{Extension: "drawio", CoverExtension: "svg", Enabled: false},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Locale:      "en",
		VaultDir:    ".",
		DataDir:     ".mstudio",
		DefaultKind: string(diagrams.KindFlowchart),
		DebounceMS:  int(debounce.DefaultDelay / time.Millisecond),
		Flowchart: FlowchartConfig{
			Direction: string(diagrams.DirectionTD),
		},
		Gantt: GanttConfig{
			TimeFormat: string(diagrams.TimeFormatDate),
			Scheduling: string(diagrams.SchedulingDates),
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Assets: AssetsConfig{
			CustomTypes:   append([]CustomType(nil), DefaultCustomTypes...),
			ConfirmDelete: true,
		},
	}
}

// Debounce returns the preview delay as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// StartingModel returns the editor defaults for kind with the configured
// flowchart direction and gantt mode applied.
func (c *Config) StartingModel(kind diagrams.Kind, loc *i18n.Locale, now time.Time) (diagrams.Model, error) {
	m, err := editor.Defaults(kind, loc, now)
	if err != nil {
		return nil, err
	}
	switch v := m.(type) {
	case diagrams.Flowchart:
		if c.Flowchart.Direction != "" {
			return edit.SetDirection(v, diagrams.Direction(c.Flowchart.Direction)), nil
		}
	case diagrams.Gantt:
		if tf := diagrams.TimeFormat(c.Gantt.TimeFormat); tf != "" && tf != v.TimeFormat {
			v = edit.SetTimeFormat(v, tf, now)
		}
		if c.Gantt.Scheduling != "" {
			v = edit.SetScheduling(v, diagrams.Scheduling(c.Gantt.Scheduling))
		}
		return v, nil
	}
	return m, nil
}
