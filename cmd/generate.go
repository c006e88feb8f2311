package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/i18n"
)

var generateCmd = &cobra.Command{
	Use:   "generate [kind]",
	Short: "Print Mermaid code for a diagram model",
	Long: `Reads a diagram model from --model (YAML or JSON, "-" for stdin) and
prints the generated Mermaid code. The file may be a {kind, model}
document or a bare model of the given kind. Without --model the starting
model for the kind is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("model", "", "model file (YAML or JSON, - for stdin)")
	generateCmd.Flags().Bool("fence", false, "wrap the code in a ```mermaid fence")
	generateCmd.Flags().String("lang", "", "language for default labels (overrides config)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	modelPath, _ := cmd.Flags().GetString("model")
	fence, _ := cmd.Flags().GetBool("fence")
	lang, _ := cmd.Flags().GetString("lang")
	if lang == "" {
		lang = cfg.Locale
	}
	loc := i18n.New(lang)

	var kindArg string
	if len(args) > 0 {
		kindArg = args[0]
	}
	kind, m, err := readModel(cfg, loc, kindArg, modelPath)
	if err != nil {
		return err
	}

	code := diagrams.GenerateWith(kind, m, loc.Fallbacks())
	if fence {
		code = diagrams.Fence(code)
	}
	fmt.Fprint(cmd.OutOrStdout(), code)
	return nil
}
