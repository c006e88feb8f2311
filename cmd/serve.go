package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/mermaid-studio/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing diagram generation, note insertion and asset lookup tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		v, err := openVault(cfg)
		if err != nil {
			return err
		}
		checker, database, err := openChecker(cfg, v)
		if err != nil {
			// Diagram tools still work without the asset index.
			fmt.Fprintf(os.Stderr, "Warning: asset tools disabled: %v\n", err)
		} else {
			defer database.Close()
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "mermaid-studio MCP server started on stdio (vault=%s)\n", v.Root())

		srv := mcpserver.NewServer(mcpserver.Deps{
			Vault:    v,
			Assets:   checker,
			Locale:   cfg.Locale,
			Defaults: cfg.StartingModel,
		})
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
