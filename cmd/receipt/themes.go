package main

import (
	"fmt"

	"github.com/Veraticus/poultry-receipt/internal/cli"
	"github.com/Veraticus/poultry-receipt/internal/config"
	"github.com/Veraticus/poultry-receipt/internal/receipt"
	"github.com/spf13/cobra"
)

func themesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List receipt themes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(receipt.ThemeNames()))
			for _, name := range receipt.ThemeNames() {
				mark := ""
				if name == cfg.Receipt.Theme {
					mark = "✓"
				}
				rows = append(rows, []string{name, receipt.ThemeDescription(name), mark})
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatTable([]string{"Theme", "Description", "Current"}, rows))
			return nil
		},
	}
}
