package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Werneck0live/company-directory/internal/browse"
	"github.com/Werneck0live/company-directory/internal/config"
)

func newIndustriesCmd(cfg *config.DirectoryConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "industries",
		Short: "Print the distinct industries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			for _, name := range browse.LoadIndustries(cmd.Context(), s, slog.Default()) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
