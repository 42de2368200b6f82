package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "Poultry Shop", cfg.Shop.Name)
	assert.Equal(t, "navy", cfg.Receipt.Theme)
	assert.Equal(t, "en-PK", cfg.Receipt.Locale)
	assert.Equal(t, TargetFile, cfg.Export.Target)
	assert.Equal(t, FormatText, cfg.Export.Format)
	assert.Equal(t, 3, cfg.Export.Retries)
	assert.Equal(t, PrinterNone, cfg.Printer.Type)
	assert.True(t, cfg.Ledger.Enabled)
	assert.Equal(t, "ledger.db", filepath.Base(cfg.Ledger.Path))
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadFrom_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
shop:
  name: Afzal Poultry Shop
  owner: Muhammad Ali
receipt:
  theme: Thermal
export:
  target: printer
  format: escpos
printer:
  type: network
  address: 192.168.1.50:9100
  width: 48
ledger:
  enabled: false
`), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := LoadFrom(v)
	require.NoError(t, err)

	assert.Equal(t, "Afzal Poultry Shop", cfg.Shop.Name)
	assert.Equal(t, "Muhammad Ali", cfg.Shop.Owner)
	assert.Equal(t, "thermal", cfg.Receipt.Theme)
	assert.Equal(t, TargetPrinter, cfg.Export.Target)
	assert.Equal(t, FormatESCPOS, cfg.Export.Format)
	assert.Equal(t, "192.168.1.50:9100", cfg.Printer.Address)
	assert.Equal(t, 48, cfg.Printer.Width)
	assert.False(t, cfg.Ledger.Enabled)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		values map[string]any
		name   string
		want   string
	}{
		{name: "empty shop name", values: map[string]any{"shop.name": " "}, want: "shop.name"},
		{name: "unknown target", values: map[string]any{"export.target": "fax"}, want: "export.target"},
		{name: "unknown format", values: map[string]any{"export.format": "pdf"}, want: "export.format"},
		{name: "no retries", values: map[string]any{"export.retries": 0}, want: "export.retries"},
		{name: "network without address", values: map[string]any{"printer.type": "network"}, want: "printer.address"},
		{name: "printer target without printer", values: map[string]any{"export.target": "printer"}, want: "printer.type is none"},
		{name: "narrow printer", values: map[string]any{"printer.width": 8}, want: "printer.width"},
		{name: "bad log level", values: map[string]any{"logging.level": "loud"}, want: "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			for k, val := range tt.values {
				v.Set(k, val)
			}

			_, err := LoadFrom(v)
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("RECEIPT_TEST_DIR", "/srv/receipts")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "ledger.db"), ExpandPath("~/ledger.db"))
	assert.Equal(t, "/srv/receipts/out", ExpandPath("$RECEIPT_TEST_DIR/out"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
}
