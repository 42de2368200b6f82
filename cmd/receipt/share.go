package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/poultry-receipt/internal/cli"
	"github.com/Veraticus/poultry-receipt/internal/common"
	"github.com/Veraticus/poultry-receipt/internal/export"
	"github.com/spf13/cobra"
)

func shareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Issue a receipt from flags",
		Long: `Render a receipt from flags, send it to the export target and record
it in the history. The weight and rate must both be set.

Example:
  receipt share --weight 2.5 --rate 300 --bill 2024-05-01:500 --target printer`,
		RunE: runShare,
	}

	addInputFlags(cmd)
	cmd.Flags().String("theme", "", "receipt theme (see 'receipt themes')")
	cmd.Flags().String("target", "", "export target: file, clipboard, printer, stdout (default: export.target)")

	return cmd
}

func runShare(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	target, _ := cmd.Flags().GetString("target")

	a, err := newApp(ctx, target, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	in, err := inputFromFlags(cmd, time.Now())
	if err != nil {
		return err
	}

	issued, err := a.service.Share(ctx, in, themeFlag(cmd, a.cfg))
	switch {
	case errors.Is(err, export.ErrCancelled):
		return nil
	case errors.Is(err, export.ErrIncomplete):
		return common.NewUserError("Set both --weight and --rate to issue a receipt.", err)
	case err != nil:
		return fmt.Errorf("failed to share receipt: %w", err)
	}

	// The receipt itself is on stdout for the stdout target.
	if a.service.Target() != "stdout" {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(sharedMessage(a, issued)))
	}
	return nil
}
