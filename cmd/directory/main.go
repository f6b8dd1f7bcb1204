// Command directory navega pelo diretório de empresas no terminal (TUI) ou
// imprime listagens filtradas.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/Werneck0live/company-directory/internal/config"
	"github.com/Werneck0live/company-directory/internal/models"
	"github.com/Werneck0live/company-directory/internal/snapshot"
	"github.com/Werneck0live/company-directory/internal/store"
	"github.com/Werneck0live/company-directory/internal/store/memory"
	"github.com/Werneck0live/company-directory/internal/store/remote"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.LoadDirectoryConfig()

	root := &cobra.Command{
		Use:          "directory",
		Short:        "Browse and discover companies",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Source != config.SourceRemote && cfg.Source != config.SourceSnapshot {
				return fmt.Errorf("invalid --source %q (want %s or %s)", cfg.Source, config.SourceRemote, config.SourceSnapshot)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfg.Source, "source", cfg.Source, "data source: remote | snapshot")
	pf.StringVar(&cfg.APIBaseURL, "api-url", cfg.APIBaseURL, "directory API base URL (remote source)")
	pf.StringVar(&cfg.SnapshotPath, "snapshot", cfg.SnapshotPath, "JSON/YAML snapshot file (default: bundled data)")
	pf.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout")
	pf.BoolVar(&cfg.ServerFilter, "server-filter", cfg.ServerFilter, "send filters to the API as query params (directory API only)")

	root.AddCommand(newBrowseCmd(cfg), newListCmd(cfg), newIndustriesCmd(cfg))
	return root
}

// openStore monta o store da fonte configurada.
func openStore(cfg *config.DirectoryConfig) (store.Store, error) {
	if cfg.Source == config.SourceSnapshot {
		var (
			companies []models.Company
			err       error
		)
		if cfg.SnapshotPath != "" {
			companies, err = snapshot.LoadFile(cfg.SnapshotPath)
		} else {
			companies, err = snapshot.Bundled()
		}
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		return memory.New(companies), nil
	}
	return remote.New(remote.Options{
		BaseURL:      cfg.APIBaseURL,
		Timeout:      cfg.Timeout,
		RatePerSec:   cfg.RatePerSec,
		Burst:        cfg.RateBurst,
		ServerFilter: cfg.ServerFilter,
	})
}
