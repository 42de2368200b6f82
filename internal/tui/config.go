package tui

import (
	"github.com/Veraticus/poultry-receipt/internal/billing"
	"github.com/Veraticus/poultry-receipt/internal/export"
	"github.com/Veraticus/poultry-receipt/internal/receipt"
	"github.com/Veraticus/poultry-receipt/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// Config holds TUI configuration.
type Config struct {
	Theme        themes.Theme
	Session      *billing.Session
	Service      *export.Service
	Renderer     *lipgloss.Renderer
	ReceiptTheme string
	Width        int
	Height       int
	ShowHelp     bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		ReceiptTheme: receipt.DefaultTheme,
		Width:        80,
		Height:       24,
		ShowHelp:     true,
	}
}

// WithSession edits an existing session instead of a fresh one.
func WithSession(s *billing.Session) Option {
	return func(c *Config) {
		c.Session = s
	}
}

// WithService sets the export service used to preview and share.
func WithService(s *export.Service) Option {
	return func(c *Config) {
		c.Service = s
	}
}

// WithTheme sets the visual theme of the form.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithReceiptTheme sets the receipt theme shown first in the preview.
func WithReceiptTheme(name string) Option {
	return func(c *Config) {
		c.ReceiptTheme = name
	}
}

// WithRenderer sets the lipgloss renderer for the receipt preview.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(c *Config) {
		c.Renderer = r
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}
