package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Veraticus/poultry-receipt/internal/cli"
	"github.com/Veraticus/poultry-receipt/internal/common"
	"github.com/Veraticus/poultry-receipt/internal/config"
	"github.com/Veraticus/poultry-receipt/internal/ledger"
	"github.com/Veraticus/poultry-receipt/internal/receipt"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse issued receipts",
		Long: `Every shared receipt is recorded with its totals. Use 'list' to see
the latest ones and 'show' to look one up by id or id prefix.`,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List recently issued receipts",
		RunE:  runHistoryList,
	}
	list.Flags().IntP("limit", "n", 20, "number of receipts to show (0 for all)")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one issued receipt",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}

	cmd.AddCommand(list, show)
	return cmd
}

func openHistory(cmd *cobra.Command) (*config.Config, *ledger.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Ledger.Enabled {
		return nil, nil, common.NewUserError("Receipt history is disabled (ledger.enabled=false).", nil)
	}
	store, err := openLedger(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No receipts issued yet."))
		return nil
	}

	f := newFormatter(cfg)
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID.String()[:8],
			e.IssuedAt.Local().Format("2006-01-02 15:04"),
			receipt.FormatDate(e.ReceiptDate),
			f.Money(e.FinalTotal.InexactFloat64()),
			e.Target,
		})
	}

	fmt.Fprintln(out, cli.FormatTable([]string{"ID", "Issued", "Date", "Total", "Target"}, rows))
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	cfg, store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	e, err := store.Find(cmd.Context(), args[0])
	if errors.Is(err, ledger.ErrNotFound) {
		return common.NewUserError(fmt.Sprintf("No receipt matches %q.", args[0]), err)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatEntry(e, newFormatter(cfg)))
	return nil
}

func formatEntry(e ledger.Entry, f *receipt.Formatter) string {
	rows := [][]string{
		{"ID", e.ID.String()},
		{"Issued", e.IssuedAt.Local().Format(time.RFC1123)},
		{"Receipt date", receipt.FormatDate(e.ReceiptDate)},
		{"Weight (kg)", f.Amount(e.Weight.InexactFloat64())},
		{"Rate per kg", f.Amount(e.Rate.InexactFloat64())},
		{"Current total", f.Money(e.ItemTotal.InexactFloat64())},
		{"Previous balance", f.Money(e.PreviousTotal.InexactFloat64())},
		{"Previous bills", strconv.Itoa(e.BillCount)},
		{"Total bill", f.Money(e.FinalTotal.InexactFloat64())},
		{"Theme", e.Theme},
		{"Shared via", e.Target},
	}
	return cli.FormatTitle("Receipt "+e.ID.String()[:8]) + "\n" + cli.FormatTable([]string{"Field", "Value"}, rows)
}
