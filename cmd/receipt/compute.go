package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Veraticus/poultry-receipt/internal/billing"
	"github.com/Veraticus/poultry-receipt/internal/cli"
	"github.com/Veraticus/poultry-receipt/internal/config"
	"github.com/spf13/cobra"
)

func computeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Show the totals for a receipt",
		Long: `Compute the current total, the previous balance and the final bill
from flags, without issuing anything.

Example:
  receipt compute --weight 2.5 --rate 300 --bill 2024-05-01:500 --bill 250`,
		RunE: runCompute,
	}

	addInputFlags(cmd)
	cmd.Flags().Bool("json", false, "print the totals as JSON")

	return cmd
}

type computeResult struct {
	Input    billing.ReceiptInput  `json:"input"`
	Totals   billing.ReceiptTotals `json:"totals"`
	CanIssue bool                  `json:"canIssue"`
}

func runCompute(cmd *cobra.Command, _ []string) error {
	in, err := inputFromFlags(cmd, time.Now())
	if err != nil {
		return err
	}
	totals := billing.ComputeTotals(in)
	out := cmd.OutOrStdout()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(computeResult{Input: in, Totals: totals, CanIssue: in.CanIssue()})
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	f := newFormatter(cfg)

	rows := [][]string{
		{"Current total", f.Money(totals.ItemTotal)},
		{"Previous balance", f.Amount(totals.PreviousTotal)},
		{"Total bill", f.Money(totals.FinalTotal)},
	}
	fmt.Fprintln(out, cli.FormatTable([]string{"", "Amount"}, rows))

	if !in.CanIssue() {
		fmt.Fprintln(out, cli.FormatWarning("Weight and rate are both needed before a receipt can be issued."))
	}
	return nil
}
