package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/poultry-receipt/internal/billing"
	"github.com/Veraticus/poultry-receipt/internal/cli"
	"github.com/Veraticus/poultry-receipt/internal/common"
	"github.com/Veraticus/poultry-receipt/internal/config"
	"github.com/Veraticus/poultry-receipt/internal/export"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file.json>",
		Short: "Render many receipts into a directory",
		Long: `Read a JSON array of receipts and write each one as a file. Receipts
are rendered only; they are not recorded in the history.

Each element uses the same fields as the HTTP API:
  [{"date": "2024-05-02", "weight": 2.5, "rate": 300,
    "previousBills": [{"date": "2024-04-28", "amount": 500}]}]`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().String("theme", "", "receipt theme (see 'receipt themes')")
	cmd.Flags().StringP("out", "o", "", "output directory (default: export.dir)")
	cmd.Flags().Bool("no-progress", false, "hide the progress bar")

	return cmd
}

// batchResult counts what a batch run did.
type batchResult struct {
	Written []string
	Skipped int
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	inputs, err := readBatchFile(args[0])
	if err != nil {
		return err
	}

	dir, _ := cmd.Flags().GetString("out")
	if dir == "" {
		dir = cfg.Export.Dir
	}
	dir = config.ExpandPath(dir)

	out := cmd.OutOrStdout()
	handler := cli.NewInterruptHandler(out)
	ctx := handler.HandleInterrupts(cmd.Context(), "Batch rendering", "Receipts written so far are kept.")

	files := export.NewFileSharer(dir)
	svc := export.NewService(files,
		export.WithHeader(shopHeader(cfg)),
		export.WithFormatter(newFormatter(cfg)),
		export.WithFormat(cfg.Export.Format),
		export.WithSlipWidth(cfg.Printer.Width),
		export.WithWidth(cfg.Receipt.Width),
	)

	var progress io.Writer = cmd.ErrOrStderr()
	if hide, _ := cmd.Flags().GetBool("no-progress"); hide {
		progress = io.Discard
	}
	bar := newBatchBar(len(inputs), progress)

	res, err := renderBatch(ctx, svc, files, inputs, themeFlag(cmd, cfg), bar)
	_ = bar.Finish()
	fmt.Fprintln(progress)

	if handler.WasInterrupted() {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Stopped after %d of %d receipts.", len(res.Written), len(inputs))))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Wrote %d receipts to %s", len(res.Written), dir)))
	if res.Skipped > 0 {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Skipped %d receipts without weight and rate.", res.Skipped)))
	}
	return nil
}

func newBatchBar(total int, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Rendering receipts...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// readBatchFile loads a JSON array of receipts and gives every bill an id.
func readBatchFile(path string) ([]billing.ReceiptInput, error) {
	data, err := os.ReadFile(config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var inputs []billing.ReceiptInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, common.NewUserError(
			fmt.Sprintf("%s is not a JSON array of receipts: %v", path, err), err)
	}

	for i := range inputs {
		inputs[i] = billing.EnsureIDs(inputs[i])
	}
	return inputs, nil
}

// renderBatch writes each receipt that can be issued. It stops at the first
// write error or when ctx is canceled.
func renderBatch(ctx context.Context, svc *export.Service, files *export.FileSharer,
	inputs []billing.ReceiptInput, theme string, bar *progressbar.ProgressBar,
) (batchResult, error) {
	var res batchResult

	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if !in.CanIssue() {
			slog.Warn("Skipping receipt without weight and rate", "index", i)
			res.Skipped++
			_ = bar.Add(1)
			continue
		}

		artifact, err := svc.Prepare(in, theme)
		if err != nil {
			return res, fmt.Errorf("receipt %d: %w", i, err)
		}
		if err := files.Share(ctx, artifact); err != nil {
			return res, fmt.Errorf("receipt %d: %w", i, err)
		}

		res.Written = append(res.Written, files.Path(artifact))
		common.LogDebug("Receipt written", common.Fields{"index": i, "file": artifact.FileName})
		_ = bar.Add(1)
	}

	return res, nil
}
