package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/poultry-receipt/internal/common"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when a loaded setting has an unusable value.
var ErrInvalidConfig = common.ErrInvalidConfig

// Export targets.
const (
	TargetFile      = "file"
	TargetClipboard = "clipboard"
	TargetPrinter   = "printer"
	TargetStdout    = "stdout"
)

// Export formats.
const (
	FormatText   = "text"
	FormatESCPOS = "escpos"
)

// Printer connections.
const (
	PrinterNone    = "none"
	PrinterUSB     = "usb"
	PrinterNetwork = "network"
)

// Config is the complete application configuration.
type Config struct {
	Shop    ShopConfig
	Receipt ReceiptConfig
	Export  ExportConfig
	Printer PrinterConfig
	Ledger  LedgerConfig
	Server  ServerConfig
	Logging LoggingConfig
}

// ShopConfig is printed in the receipt header and footer.
type ShopConfig struct {
	Name    string
	Tagline string
	Owner   string
	Country string
}

// ReceiptConfig controls how receipts look.
type ReceiptConfig struct {
	Theme    string
	Locale   string
	Currency string
	Width    int
}

// ExportConfig controls where shared receipts go.
type ExportConfig struct {
	Target  string
	Dir     string
	Format  string
	Retries int
}

// PrinterConfig describes an attached receipt printer.
type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	Width   int
}

// LedgerConfig controls the issued-receipt history.
type LedgerConfig struct {
	Path    string
	Enabled bool
}

// ServerConfig controls the HTTP front end.
type ServerConfig struct {
	Addr string
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// Dir returns the directory holding the config file and the ledger.
func Dir() string {
	return ExpandPath("~/.config/poultry-receipt")
}

// SetDefaults registers default values for every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("shop.name", "Poultry Shop")
	v.SetDefault("shop.tagline", "")
	v.SetDefault("shop.owner", "")
	v.SetDefault("shop.country", "")
	v.SetDefault("receipt.theme", "navy")
	v.SetDefault("receipt.locale", "en-PK")
	v.SetDefault("receipt.currency", "Rs")
	v.SetDefault("receipt.width", 0)
	v.SetDefault("export.target", TargetFile)
	v.SetDefault("export.dir", filepath.Join(os.TempDir(), "poultry-receipt"))
	v.SetDefault("export.format", FormatText)
	v.SetDefault("export.retries", 3)
	v.SetDefault("printer.type", PrinterNone)
	v.SetDefault("printer.usb_path", "/dev/usb/lp0")
	v.SetDefault("printer.address", "")
	v.SetDefault("printer.width", 32)
	v.SetDefault("ledger.enabled", true)
	v.SetDefault("ledger.path", filepath.Join(Dir(), "ledger.db"))
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		Shop: ShopConfig{
			Name:    v.GetString("shop.name"),
			Tagline: v.GetString("shop.tagline"),
			Owner:   v.GetString("shop.owner"),
			Country: v.GetString("shop.country"),
		},
		Receipt: ReceiptConfig{
			Theme:    strings.ToLower(v.GetString("receipt.theme")),
			Locale:   v.GetString("receipt.locale"),
			Currency: v.GetString("receipt.currency"),
			Width:    v.GetInt("receipt.width"),
		},
		Export: ExportConfig{
			Target:  strings.ToLower(v.GetString("export.target")),
			Dir:     ExpandPath(v.GetString("export.dir")),
			Format:  strings.ToLower(v.GetString("export.format")),
			Retries: v.GetInt("export.retries"),
		},
		Printer: PrinterConfig{
			Type:    strings.ToLower(v.GetString("printer.type")),
			USBPath: ExpandPath(v.GetString("printer.usb_path")),
			Address: v.GetString("printer.address"),
			Width:   v.GetInt("printer.width"),
		},
		Ledger: LedgerConfig{
			Enabled: v.GetBool("ledger.enabled"),
			Path:    ExpandPath(v.GetString("ledger.path")),
		},
		Server: ServerConfig{
			Addr: v.GetString("server.addr"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   ExpandPath(v.GetString("logging.file")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every unusable setting at once.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Shop.Name) == "" {
		errs = append(errs, errors.New("shop.name must not be empty"))
	}

	switch c.Export.Target {
	case TargetFile, TargetClipboard, TargetPrinter, TargetStdout:
	default:
		errs = append(errs, fmt.Errorf("export.target %q is not one of file, clipboard, printer, stdout", c.Export.Target))
	}

	switch c.Export.Format {
	case FormatText, FormatESCPOS:
	default:
		errs = append(errs, fmt.Errorf("export.format %q is not one of text, escpos", c.Export.Format))
	}

	if c.Export.Retries < 1 {
		errs = append(errs, errors.New("export.retries must be at least 1"))
	}

	switch c.Printer.Type {
	case PrinterNone, PrinterUSB:
	case PrinterNetwork:
		if c.Printer.Address == "" {
			errs = append(errs, errors.New("printer.address is required for a network printer"))
		}
	default:
		errs = append(errs, fmt.Errorf("printer.type %q is not one of usb, network, none", c.Printer.Type))
	}

	if c.Export.Target == TargetPrinter && c.Printer.Type == PrinterNone {
		errs = append(errs, errors.New("export.target is printer but printer.type is none"))
	}

	if c.Printer.Width < 16 {
		errs = append(errs, errors.New("printer.width must be at least 16 characters"))
	}

	if c.Receipt.Width < 0 {
		errs = append(errs, errors.New("receipt.width must not be negative"))
	}

	if c.Ledger.Enabled && c.Ledger.Path == "" {
		errs = append(errs, errors.New("ledger.path is required when the ledger is enabled"))
	}

	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
