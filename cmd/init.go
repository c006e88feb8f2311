package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/mermaid-studio/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize mermaid-studio configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the vault, locale and editor defaults, and writes the config file (default .mstudio.yml).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
