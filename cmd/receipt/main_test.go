package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/poultry-receipt/internal/billing"
	"github.com/Veraticus/poultry-receipt/internal/config"
	"github.com/Veraticus/poultry-receipt/internal/export"
	"github.com/Veraticus/poultry-receipt/internal/receipt"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBillFlag(t *testing.T) {
	tests := []struct {
		raw        string
		wantDate   string
		wantAmount string
	}{
		{raw: "2024-05-01:1000", wantDate: "2024-05-01", wantAmount: "1000"},
		{raw: " 2024-05-01 : 250.5 ", wantDate: "2024-05-01", wantAmount: "250.5"},
		{raw: "700", wantDate: "", wantAmount: "700"},
		{raw: ":300", wantDate: "", wantAmount: "300"},
		{raw: "2024-05-01:", wantDate: "2024-05-01", wantAmount: ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			date, amount := parseBillFlag(tt.raw)
			assert.Equal(t, tt.wantDate, date)
			assert.Equal(t, tt.wantAmount, amount)
		})
	}
}

func newInputCmd(t *testing.T, flags map[string][]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addInputFlags(cmd)
	for name, values := range flags {
		for _, v := range values {
			require.NoError(t, cmd.Flags().Set(name, v))
		}
	}
	return cmd
}

func TestInputFromFlags(t *testing.T) {
	now := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	cmd := newInputCmd(t, map[string][]string{
		"weight": {"2.5"},
		"rate":   {"300"},
		"bill":   {"2024-04-28:500", "abc", "300"},
	})

	in, err := inputFromFlags(cmd, now)
	require.NoError(t, err)

	assert.Equal(t, "2024-05-02", in.Date)
	assert.InDelta(t, 2.5, in.Weight.Float(), 1e-9)
	require.Len(t, in.PreviousBills, 3)
	assert.Equal(t, billing.BillID(1), in.PreviousBills[0].ID)
	assert.Equal(t, "2024-04-28", in.PreviousBills[0].Date)
	assert.Empty(t, in.PreviousBills[2].Date)

	totals := billing.ComputeTotals(in)
	assert.InDelta(t, 750, totals.ItemTotal, 1e-9)
	assert.InDelta(t, 800, totals.PreviousTotal, 1e-9)
	assert.InDelta(t, 1550, totals.FinalTotal, 1e-9)
}

func TestInputFromFlags_Dates(t *testing.T) {
	now := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)

	in, err := inputFromFlags(newInputCmd(t, map[string][]string{"date": {"2023-12-31"}}), now)
	require.NoError(t, err)
	assert.Equal(t, "2023-12-31", in.Date)

	in, err = inputFromFlags(newInputCmd(t, map[string][]string{"no-date": {"true"}}), now)
	require.NoError(t, err)
	assert.Empty(t, in.Date)

	_, err = inputFromFlags(newInputCmd(t, map[string][]string{"date": {"02/05/2024"}}), now)
	assert.Error(t, err)
}

func TestComputeCmd_JSON(t *testing.T) {
	cmd := computeCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--json", "--weight", "2", "--rate", "150", "--bill", "2024-04-01:100"})
	require.NoError(t, cmd.Execute())

	var res computeResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.InDelta(t, 300, res.Totals.ItemTotal, 1e-9)
	assert.InDelta(t, 400, res.Totals.FinalTotal, 1e-9)
	assert.True(t, res.CanIssue)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Shop:    config.ShopConfig{Name: "Test Poultry"},
		Receipt: config.ReceiptConfig{Theme: "plain", Locale: "en", Currency: "Rs"},
		Export:  config.ExportConfig{Target: config.TargetFile, Dir: t.TempDir(), Format: config.FormatText, Retries: 1},
		Printer: config.PrinterConfig{Type: config.PrinterNone, Width: receipt.SlipWidth58mm},
	}
}

func TestNewSharer(t *testing.T) {
	cfg := testConfig(t)

	for target, want := range map[string]string{
		config.TargetFile:      "file",
		config.TargetClipboard: "clipboard",
		config.TargetStdout:    "stdout",
	} {
		s, err := newSharer(cfg, target, io.Discard)
		require.NoError(t, err, target)
		assert.Equal(t, want, s.Name())
	}

	_, err := newSharer(cfg, config.TargetPrinter, io.Discard)
	require.ErrorIs(t, err, export.ErrUnsupported)

	cfg.Printer.Type = config.PrinterNetwork
	cfg.Printer.Address = "127.0.0.1:9100"
	s, err := newSharer(cfg, config.TargetPrinter, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "printer", s.Name())

	_, err = newSharer(cfg, "fax", io.Discard)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestOpenLedger(t *testing.T) {
	cfg := testConfig(t)

	store, err := openLedger(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, store, "disabled ledger opens nothing")

	cfg.Ledger = config.LedgerConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "ledger.db")}
	store, err = openLedger(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { _ = store.Close() })

	entries, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

const batchJSON = `[
	{"date": "2024-05-02", "weight": 2.5, "rate": 300, "previousBills": [{"date": "2024-04-28", "amount": 500}]},
	{"date": "2024-05-03", "weight": "", "rate": 300},
	{"date": "", "weight": "1", "rate": "200"}
]`

func TestReadBatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(batchJSON), 0o600))

	inputs, err := readBatchFile(path)
	require.NoError(t, err)
	require.Len(t, inputs, 3)
	assert.Equal(t, billing.BillID(1), inputs[0].PreviousBills[0].ID)
	assert.False(t, inputs[1].CanIssue())

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"date":"2024-05-02"}`), 0o600))
	_, err = readBatchFile(bad)
	assert.Error(t, err)
}

func TestRenderBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(batchJSON), 0o600))
	inputs, err := readBatchFile(path)
	require.NoError(t, err)

	dir := t.TempDir()
	files := export.NewFileSharer(dir)
	svc := export.NewService(files, export.WithHeader(receipt.Header{ShopName: "Test Poultry"}))

	res, err := renderBatch(context.Background(), svc, files, inputs, "plain", newBatchBar(len(inputs), io.Discard))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Written, 2)
	for _, p := range res.Written {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Test Poultry")
	}
}

func TestRenderBatch_Cancelled(t *testing.T) {
	dir := t.TempDir()
	files := export.NewFileSharer(dir)
	svc := export.NewService(files)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inputs := []billing.ReceiptInput{{Weight: billing.Of(1), Rate: billing.Of(1)}}
	res, err := renderBatch(ctx, svc, files, inputs, "plain", newBatchBar(1, io.Discard))
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Written)
}

func TestRenderBatch_UnknownTheme(t *testing.T) {
	files := export.NewFileSharer(t.TempDir())
	svc := export.NewService(files)

	inputs := []billing.ReceiptInput{{Weight: billing.Of(1), Rate: billing.Of(1)}}
	_, err := renderBatch(context.Background(), svc, files, inputs, "neon", newBatchBar(1, io.Discard))
	assert.ErrorIs(t, err, receipt.ErrUnknownTheme)
}
