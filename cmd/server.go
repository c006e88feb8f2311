package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/mermaid-studio/internal/preview"
	"github.com/ziadkadry99/mermaid-studio/internal/server"
	"github.com/ziadkadry99/mermaid-studio/internal/session"
)

var (
	serverPort       int
	serverSessionTTL time.Duration
	serverStyle      string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the local diagram editor server",
	Long:  `Starts the mermaid-studio editor server with the REST API, live preview websocket, HTML previews and the asset checker.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}

		v, err := openVault(cfg)
		if err != nil {
			return err
		}
		checker, database, err := openChecker(cfg, v)
		if err != nil {
			return err
		}
		defer database.Close()

		rend, err := preview.New(serverStyle)
		if err != nil {
			return err
		}
		mgr := session.NewManager(session.Options{
			Delay:    cfg.Debounce(),
			Defaults: cfg.StartingModel,
		}, cfg.Locale)

		srv, err := server.New(server.Config{
			Port:       cfg.Server.Port,
			AllowAll:   cfg.Server.AllowAllOrigins,
			Locale:     cfg.Locale,
			SessionTTL: serverSessionTTL,
			Defaults:   cfg.StartingModel,
		}, server.Deps{
			Sessions: mgr,
			Vault:    v,
			Assets:   checker,
			Preview:  rend,
		})
		if err != nil {
			return err
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "mermaid-studio server %s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Vault: %s\n", v.Root())
		fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())
		fmt.Fprintf(os.Stderr, "  Locale: %s\n", cfg.Locale)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides config)")
	serverCmd.Flags().DurationVar(&serverSessionTTL, "session-ttl", 30*time.Minute, "drop editing sessions idle this long (0 keeps them)")
	serverCmd.Flags().StringVar(&serverStyle, "style", preview.DefaultStyle, "syntax highlighting style for the model inspector")
	rootCmd.AddCommand(serverCmd)
}
