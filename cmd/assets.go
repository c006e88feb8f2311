package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/mermaid-studio/internal/assets"
	"github.com/ziadkadry99/mermaid-studio/internal/progress"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Find, rename and trash vault assets",
	Long:  `Scans the vault for images and custom file types, records which notes link to them, and manages the ones no note uses.`,
}

var assetsScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Rebuild the asset reference index",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker, closeDB, err := assetChecker()
		if err != nil {
			return err
		}
		defer closeDB()

		reporter := progress.NewReporter()
		scan, err := checker.Scan(cmd.Context(), progress.Scan(reporter, "Scanning notes"))
		if err != nil {
			return err
		}
		fmt.Printf("Scanned %d notes, %d assets in %s\n",
			scan.Documents, scan.Assets, scan.FinishedAt.Sub(scan.StartedAt).Round(time.Millisecond))

		unused, err := checker.Unused(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Unused assets: %d\n", len(unused))
		return nil
	},
}

var assetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed assets and their reference counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker, closeDB, err := assetChecker()
		if err != nil {
			return err
		}
		defer closeDB()

		unused, _ := cmd.Flags().GetBool("unused")
		prefix, _ := cmd.Flags().GetString("prefix")

		last, err := checker.Store().LastScan(cmd.Context())
		if err != nil {
			return err
		}
		if last == nil {
			return errors.New("the vault has not been scanned yet; run `mstudio assets scan`")
		}
		list, err := checker.Store().List(cmd.Context(), assets.ListFilter{Unused: unused, Prefix: prefix})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tREFS\tSIZE\tCOVER")
		for _, a := range list {
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", a.Path, a.References, a.Size, a.Cover)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Last scan %s: %d notes\n", last.FinishedAt.Format("2006-01-02 15:04"), last.Documents)
		}
		return nil
	},
}

var assetsRenameCmd = &cobra.Command{
	Use:   "rename <path> <new-name>",
	Short: "Rename an asset in place, keeping its cover and index entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		checker, closeDB, err := assetChecker()
		if err != nil {
			return err
		}
		defer closeDB()

		to, err := checker.Rename(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Renamed %s -> %s\n", args[0], to)
		return nil
	},
}

var assetsTrashCmd = &cobra.Command{
	Use:   "trash <path>",
	Short: "Move an asset and its cover to the vault trash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		checker, closeDB, err := assetChecker()
		if err != nil {
			return err
		}
		defer closeDB()

		yes, _ := cmd.Flags().GetBool("yes")
		confirmed := yes || !checker.ConfirmDelete
		if !confirmed {
			refs, err := checker.Store().References(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			label := fmt.Sprintf("Move %s to trash", args[0])
			if len(refs) > 0 {
				label = fmt.Sprintf("%s is linked from %d place(s). Move it to trash anyway", args[0], len(refs))
			}
			prompt := promptui.Prompt{Label: label, IsConfirm: true}
			if _, err := prompt.Run(); err != nil {
				if errors.Is(err, promptui.ErrAbort) {
					fmt.Println("Cancelled.")
					return nil
				}
				return fmt.Errorf("confirm: %w", err)
			}
			confirmed = true
		}

		to, err := checker.Trash(cmd.Context(), args[0], confirmed)
		if err != nil {
			return err
		}
		fmt.Printf("Moved %s -> %s\n", args[0], to)
		return nil
	},
}

// assetChecker opens the vault and asset database from config.
func assetChecker() (*assets.Checker, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	v, err := openVault(cfg)
	if err != nil {
		return nil, nil, err
	}
	checker, database, err := openChecker(cfg, v)
	if err != nil {
		return nil, nil, err
	}
	return checker, func() { database.Close() }, nil
}

func init() {
	assetsListCmd.Flags().Bool("unused", false, "only list assets no note links to")
	assetsListCmd.Flags().String("prefix", "", "only list assets under this folder")
	assetsTrashCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	assetsCmd.AddCommand(assetsScanCmd, assetsListCmd, assetsRenameCmd, assetsTrashCmd)
	rootCmd.AddCommand(assetsCmd)
}
