package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ziadkadry99/mermaid-studio/internal/assets"
	"github.com/ziadkadry99/mermaid-studio/internal/config"
	"github.com/ziadkadry99/mermaid-studio/internal/db"
	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/i18n"
	"github.com/ziadkadry99/mermaid-studio/internal/vault"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `mstudio init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// openVault opens the configured vault folder.
func openVault(cfg *config.Config) (*vault.Vault, error) {
	v, err := vault.Open(cfg.VaultDir, cfg.Assets.VaultOptions())
	if err != nil {
		return nil, fmt.Errorf("opening vault: %w", err)
	}
	return v, nil
}

// openChecker opens the asset database under the data folder. The caller
// closes the returned DB.
func openChecker(cfg *config.Config, v *vault.Vault) (*assets.Checker, *db.DB, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating data dir: %w", err)
	}
	database, err := db.Open(filepath.Join(cfg.DataDir, db.FileName))
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Asset database: %s\n", database.Path())
	}
	return assets.NewChecker(v, assets.NewStore(database), cfg.Assets.ConfirmDelete), database, nil
}

// readModel resolves the kind and model for generate and insert. A model
// file holding a {kind, model} document names its own kind; otherwise
// kindArg picks the kind and the file is the bare model. Without a file
// the configured starting model is used. path "-" reads stdin.
func readModel(cfg *config.Config, loc *i18n.Locale, kindArg, path string) (diagrams.Kind, diagrams.Model, error) {
	if kindArg == "" {
		kindArg = cfg.DefaultKind
	}
	if path == "" {
		kind, err := diagrams.ParseKind(kindArg)
		if err != nil {
			return "", nil, err
		}
		m, err := cfg.StartingModel(kind, loc, time.Now())
		return kind, m, err
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", nil, fmt.Errorf("reading model: %w", err)
	}

	if doc, err := diagrams.DecodeDocument(data); err == nil {
		return doc.Kind, doc.Model, nil
	}
	kind, err := diagrams.ParseKind(kindArg)
	if err != nil {
		return "", nil, err
	}
	m, err := diagrams.DecodeModel(kind, data)
	if err != nil {
		return "", nil, err
	}
	return kind, m, nil
}
