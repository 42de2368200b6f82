package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/poultry-receipt/internal/billing"
	"github.com/Veraticus/poultry-receipt/internal/common"
	"github.com/Veraticus/poultry-receipt/internal/config"
	"github.com/Veraticus/poultry-receipt/internal/export"
	"github.com/Veraticus/poultry-receipt/internal/ledger"
	"github.com/Veraticus/poultry-receipt/internal/receipt"
	"github.com/spf13/cobra"
)

// addInputFlags registers the flags that describe one receipt.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "receipt date, YYYY-MM-DD (default: today)")
	cmd.Flags().String("weight", "", "chicken weight in kg")
	cmd.Flags().String("rate", "", "rate per kg")
	cmd.Flags().StringArray("bill", nil, "previous bill as DATE:AMOUNT or AMOUNT (repeatable)")
	cmd.Flags().Bool("no-date", false, "leave the receipt date empty")
}

// inputFromFlags builds a receipt from the input flags through a session,
// so command line bills get the same ids and coercion as form edits.
func inputFromFlags(cmd *cobra.Command, now time.Time) (billing.ReceiptInput, error) {
	s := billing.NewSession(billing.WithClock(func() time.Time { return now }))

	if date, _ := cmd.Flags().GetString("date"); date != "" {
		if _, err := time.Parse(billing.DateLayout, date); err != nil {
			return billing.ReceiptInput{}, common.NewUserError(
				fmt.Sprintf("--date %q is not a YYYY-MM-DD date", date), err)
		}
		s.SetDate(date)
	}
	if noDate, _ := cmd.Flags().GetBool("no-date"); noDate {
		s.ClearDate()
	}

	weight, _ := cmd.Flags().GetString("weight")
	s.SetWeight(weight)
	rate, _ := cmd.Flags().GetString("rate")
	s.SetRate(rate)

	bills, _ := cmd.Flags().GetStringArray("bill")
	for _, raw := range bills {
		date, amount := parseBillFlag(raw)
		id := s.AddBill()
		s.UpdateBill(id, billing.FieldDate, date)
		s.UpdateBill(id, billing.FieldAmount, amount)
	}

	return s.Input(), nil
}

// parseBillFlag splits DATE:AMOUNT. A value without a colon is an amount
// with no date.
func parseBillFlag(raw string) (date, amount string) {
	raw = strings.TrimSpace(raw)
	idx := strings.LastIndex(raw, ":")
	if idx < 0 {
		return "", raw
	}
	return strings.TrimSpace(raw[:idx]), strings.TrimSpace(raw[idx+1:])
}

// themeFlag returns --theme when given, otherwise the configured theme.
func themeFlag(cmd *cobra.Command, cfg *config.Config) string {
	if f := cmd.Flags().Lookup("theme"); f != nil && f.Changed {
		return strings.ToLower(f.Value.String())
	}
	return cfg.Receipt.Theme
}

func newFormatter(cfg *config.Config) *receipt.Formatter {
	return receipt.NewFormatter(cfg.Receipt.Locale, cfg.Receipt.Currency)
}

func shopHeader(cfg *config.Config) receipt.Header {
	return receipt.Header{
		ShopName: cfg.Shop.Name,
		Tagline:  cfg.Shop.Tagline,
		Owner:    cfg.Shop.Owner,
		Country:  cfg.Shop.Country,
	}
}

// newSharer picks the export target. stdout receives receipts for the
// "stdout" target.
func newSharer(cfg *config.Config, target string, stdout io.Writer) (export.Sharer, error) {
	switch target {
	case config.TargetFile:
		return export.NewFileSharer(cfg.Export.Dir), nil
	case config.TargetClipboard:
		return export.NewClipboardSharer(), nil
	case config.TargetStdout:
		return export.NewWriterSharer(stdout), nil
	case config.TargetPrinter:
		p, err := export.NewPrinter(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
		if err != nil {
			return nil, fmt.Errorf("failed to set up printer: %w", err)
		}
		return export.NewPrinterSharer(p), nil
	default:
		return nil, fmt.Errorf("%w: export target %q", config.ErrInvalidConfig, target)
	}
}

// openLedger opens and migrates the receipt history. It returns nil when
// the ledger is disabled.
func openLedger(ctx context.Context, cfg *config.Config) (*ledger.Store, error) {
	if !cfg.Ledger.Enabled {
		return nil, nil
	}

	store, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("Ledger ready", "path", store.Path())
	return store, nil
}

// app holds what a command needs to issue receipts.
type app struct {
	cfg     *config.Config
	service *export.Service
	ledger  *ledger.Store
}

func (a *app) Close() error {
	if a.ledger == nil {
		return nil
	}
	return a.ledger.Close()
}

// newApp loads config and wires the export service for target. An empty
// target uses export.target.
func newApp(ctx context.Context, target string, stdout io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, common.NewUserError("Configuration is invalid: "+err.Error(), err)
	}
	if target == "" {
		target = cfg.Export.Target
	}

	sharer, err := newSharer(cfg, target, stdout)
	if err != nil {
		return nil, err
	}

	store, err := openLedger(ctx, cfg)
	if err != nil {
		return nil, err
	}

	format := cfg.Export.Format
	if target == config.TargetPrinter {
		format = config.FormatESCPOS
	}

	opts := []export.Option{
		export.WithHeader(shopHeader(cfg)),
		export.WithFormatter(newFormatter(cfg)),
		export.WithFormat(format),
		export.WithSlipWidth(cfg.Printer.Width),
		export.WithWidth(cfg.Receipt.Width),
		export.WithRetry(common.RetryOptions{
			MaxAttempts:  cfg.Export.Retries,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Multiplier:   2,
		}),
	}
	if store != nil {
		opts = append(opts, export.WithRecorder(store))
	}

	return &app{
		cfg:     cfg,
		service: export.NewService(sharer, opts...),
		ledger:  store,
	}, nil
}
