package main

import (
	"fmt"
	"time"

	"github.com/Veraticus/poultry-receipt/internal/config"
	"github.com/Veraticus/poultry-receipt/internal/export"
	"github.com/Veraticus/poultry-receipt/internal/receipt"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print a receipt without issuing it",
		Long: `Render a receipt from flags and print it. Nothing is shared and
nothing is written to the history.`,
		RunE: runRender,
	}

	addInputFlags(cmd)
	cmd.Flags().String("theme", "", "receipt theme (see 'receipt themes')")
	cmd.Flags().Bool("color", false, "keep terminal colours in the output")

	return cmd
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	in, err := inputFromFlags(cmd, time.Now())
	if err != nil {
		return err
	}

	theme := themeFlag(cmd, cfg)
	out := cmd.OutOrStdout()

	if color, _ := cmd.Flags().GetBool("color"); color {
		t, err := receipt.GetTheme(theme, lipgloss.NewRenderer(out))
		if err != nil {
			return err
		}
		if cfg.Receipt.Width > 0 {
			t.Width = cfg.Receipt.Width
		}
		fmt.Fprintln(out, receipt.Render(receipt.NewView(in, shopHeader(cfg), newFormatter(cfg)), t))
		return nil
	}

	svc := export.NewService(export.NewWriterSharer(out),
		export.WithHeader(shopHeader(cfg)),
		export.WithFormatter(newFormatter(cfg)),
		export.WithWidth(cfg.Receipt.Width),
	)
	text, err := svc.Render(in, theme)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, text)
	return nil
}
