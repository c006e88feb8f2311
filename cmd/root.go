package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/mermaid-studio/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mstudio",
	Short: "Build Mermaid diagrams from structured models",
	Long: `mermaid-studio turns structured diagram models into Mermaid code. It
edits flowcharts, gantt charts, timelines, sequence diagrams, pie charts,
quadrant charts, mind maps and sankey diagrams through a local editor
server or MCP tools, inserts the result into markdown notes, and keeps
track of which vault assets those notes still use.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
