package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/i18n"
)

// vaultMarkers are folders that notes apps create at a vault root.
var vaultMarkers = map[string]string{
	".obsidian": "Obsidian",
	".logseq":   "Logseq",
	".foam":     "Foam",
}

// detectVault walks up from dir looking for a known vault marker.
func detectVault(dir string) (app string, root string) {
	for {
		for marker, name := range vaultMarkers {
			if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
				return name, dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ""
		}
		dir = parent
	}
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to mermaid-studio! Let's configure your vault.")
	fmt.Println()

	cfg := DefaultConfig()

	defaultVault := "."
	if cwd, err := os.Getwd(); err == nil {
		if app, root := detectVault(cwd); app != "" {
			fmt.Printf("Detected %s vault at %s\n\n", app, root)
			defaultVault = root
		}
	}

	// 1. Vault directory.
	vaultPrompt := promptui.Prompt{
		Label:   "Vault directory",
		Default: defaultVault,
		Validate: func(s string) error {
			info, err := os.Stat(s)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", s)
			}
			return nil
		},
	}
	vaultDir, err := vaultPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("vault dir: %w", err)
	}
	cfg.VaultDir = vaultDir

	// 2. Language.
	langs := i18n.Supported()
	localePrompt := promptui.Select{
		Label: "Select editor language",
		Items: langs,
	}
	_, cfg.Locale, err = localePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("locale selection: %w", err)
	}

	// 3. Default diagram kind.
	kinds := diagrams.Kinds()
	kindItems := make([]string, len(kinds))
	for i, k := range kinds {
		kindItems[i] = string(k)
	}
	kindPrompt := promptui.Select{
		Label: "Default diagram kind",
		Items: kindItems,
	}
	_, cfg.DefaultKind, err = kindPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("kind selection: %w", err)
	}

	// 4. Server port.
	portPrompt := promptui.Prompt{
		Label:   "Editor server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("port must be between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 5. Asset folders.
	includePrompt := promptui.Prompt{
		Label:   "Asset folders to scan (comma-separated globs, blank for all)",
		Default: "",
	}
	includeStr, err := includePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	cfg.Assets.Include = splitAndTrim(includeStr)

	excludePrompt := promptui.Prompt{
		Label:   "Asset folders to skip (comma-separated globs)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	cfg.Assets.Exclude = splitAndTrim(excludeStr)

	// 6. Delete confirmation.
	confirmPrompt := promptui.Prompt{
		Label:     "Ask before trashing unused assets",
		IsConfirm: true,
		Default:   "y",
	}
	if _, err := confirmPrompt.Run(); err != nil {
		if err != promptui.ErrAbort {
			return nil, fmt.Errorf("confirm delete: %w", err)
		}
		cfg.Assets.ConfirmDelete = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
