package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/poultry-receipt/internal/billing"
	"github.com/Veraticus/poultry-receipt/internal/cli"
	"github.com/Veraticus/poultry-receipt/internal/export"
	"github.com/Veraticus/poultry-receipt/internal/receipt"
	"github.com/Veraticus/poultry-receipt/internal/tui"
	"github.com/Veraticus/poultry-receipt/internal/tui/themes"
	"github.com/spf13/cobra"
)

func formCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Fill in a receipt interactively",
		Long: `Open the receipt form. Enter the date, weight and rate, add the
customer's previous bills, then generate and share the receipt.

With --plain the questions are asked one line at a time instead.`,
		RunE: runForm,
	}

	addFormFlags(cmd)
	return cmd
}

func addFormFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("plain", false, "ask line by line instead of opening the full-screen form")
	cmd.Flags().String("theme", "", "receipt theme (see 'receipt themes')")
	cmd.Flags().String("ui-theme", "default", "form colours (default, light)")
}

func runForm(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	plain, _ := cmd.Flags().GetBool("plain")

	a, err := newApp(ctx, "", cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	theme := themeFlag(cmd, a.cfg)
	if _, err := receipt.GetTheme(theme, nil); err != nil {
		return err
	}

	if plain {
		return runPlainForm(cmd, a, theme)
	}

	// Log lines would tear the alt-screen; keep them only when they go to a file.
	if a.cfg.Logging.File == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	}

	uiTheme, _ := cmd.Flags().GetString("ui-theme")
	m, err := tui.Run(ctx,
		tui.WithService(a.service),
		tui.WithReceiptTheme(theme),
		tui.WithTheme(themes.GetTheme(uiTheme)),
	)
	if err != nil {
		return err
	}

	slog.Debug("Form closed", "final_total", billing.ComputeTotals(m.Input()).FinalTotal)
	return nil
}

// runPlainForm asks for the receipt line by line, prints it and shares it.
func runPlainForm(cmd *cobra.Command, a *app, theme string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	handler := cli.NewInterruptHandler(out)
	ctx = handler.HandleInterrupts(ctx, "Receipt entry", "Nothing was shared.")

	session := billing.NewSession()
	prompter := cli.NewPrompter(cmd.InOrStdin(), out, newFormatter(a.cfg))
	if err := prompter.FillReceipt(ctx, session); err != nil {
		if handler.WasInterrupted() || errors.Is(err, cli.ErrInputCancelled) {
			return nil
		}
		return err
	}

	in := session.Input()
	text, err := a.service.Render(in, theme)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, text)

	if !in.CanIssue() {
		fmt.Fprintln(out, cli.FormatWarning("Weight and rate are both needed before the receipt can be shared."))
		return nil
	}

	issued, err := a.service.Share(ctx, in, theme)
	switch {
	case errors.Is(err, export.ErrCancelled):
		return nil
	case err != nil:
		return fmt.Errorf("failed to share receipt: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(sharedMessage(a, issued)))
	return nil
}

// sharedMessage says where a receipt went.
func sharedMessage(a *app, issued export.Issued) string {
	msg := "Receipt shared via " + a.service.Target()
	if a.service.Target() == "file" {
		msg = "Receipt saved to " + export.NewFileSharer(a.cfg.Export.Dir).Path(issued.Artifact)
	}
	if issued.Entry != nil {
		msg += fmt.Sprintf(" (id %s)", issued.Entry.ID.String()[:8])
	}
	return msg
}
