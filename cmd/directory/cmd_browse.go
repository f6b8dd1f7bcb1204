package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Werneck0live/company-directory/internal/config"
	"github.com/Werneck0live/company-directory/internal/models"
	"github.com/Werneck0live/company-directory/internal/tui"
	"github.com/Werneck0live/company-directory/internal/ws"
)

func newBrowseCmd(cfg *config.DirectoryConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive company browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.WSURL, "ws-url", cfg.WSURL, "websocket relay for live updates (empty = off)")
	cmd.Flags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file (the terminal belongs to the UI)")
	return cmd
}

func runBrowse(cmd *cobra.Command, cfg *config.DirectoryConfig) error {
	// a tela é da TUI; log vai para arquivo
	f, err := config.OpenLogFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	log := config.InitLoggerTo(f, cfg.LogLevel).With("svc", "directory")

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	log.Info("browse_start", "source", cfg.Source, "api", cfg.APIBaseURL, "ws", cfg.WSURL)

	ctx := cmd.Context()
	var events chan models.CompanyEvent
	if cfg.WSURL != "" {
		events = make(chan models.CompanyEvent, 16)
		go ws.Subscribe(ctx, cfg.WSURL, log, func(ev models.CompanyEvent) {
			select {
			case events <- ev:
			default:
				// já tem refresh pendente
			}
		})
	}

	m := tui.New(tui.Options{Store: s, Log: log, Timeout: cfg.Timeout, Events: events})
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		log.Error("browse_failed", "err", err)
		return err
	}
	log.Info("browse_done")
	return nil
}
