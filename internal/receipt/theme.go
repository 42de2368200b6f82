package receipt

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Receipt labels.
const (
	LabelWeight        = "Chicken weight (kg)"
	LabelRate          = "Rate per kg"
	LabelItemTotal     = "Current total"
	LabelPreviousBills = "Previous balance"
	LabelPreviousTotal = "Previous total"
	LabelFinalTotal    = "Total bill"
)

// ErrUnknownTheme is returned for a theme name that is not registered.
var ErrUnknownTheme = errors.New("unknown receipt theme")

// Layout selects how a theme arranges the receipt.
type Layout int

const (
	// LayoutCard renders boxed panels.
	LayoutCard Layout = iota
	// LayoutSlip renders a fixed-width till slip.
	LayoutSlip
)

// Theme defines the look of a rendered receipt.
type Theme struct {
	Tagline     lipgloss.Style
	Title       lipgloss.Style
	Badge       lipgloss.Style
	Card        lipgloss.Style
	Panel       lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Highlight   lipgloss.Style
	Section     lipgloss.Style
	Muted       lipgloss.Style
	TotalBox    lipgloss.Style
	TotalLabel  lipgloss.Style
	TotalValue  lipgloss.Style
	Owner       lipgloss.Style
	Footer      lipgloss.Style
	Name        string
	Description string
	Layout      Layout
	Width       int
}

// DefaultTheme is used when none is configured.
const DefaultTheme = "navy"

type themeEntry struct {
	build       func(r *lipgloss.Renderer) Theme
	description string
}

var themeRegistry = map[string]themeEntry{
	"navy":    {build: Navy, description: "Dark navy card with orange highlights"},
	"ledger":  {build: Ledger, description: "Light boxed ledger page"},
	"plain":   {build: Plain, description: "Borderless text without colour"},
	"thermal": {build: Thermal, description: "58mm till slip, printer friendly"},
}

// ThemeNames lists the registered themes in name order.
func ThemeNames() []string {
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeDescription returns the one-line description of a theme.
func ThemeDescription(name string) string {
	return themeRegistry[name].description
}

// GetTheme builds a theme by name for the given lipgloss renderer. A nil
// renderer uses lipgloss' default, which detects the terminal on stdout.
func GetTheme(name string, r *lipgloss.Renderer) (Theme, error) {
	entry, ok := themeRegistry[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownTheme, name, ThemeNames())
	}
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	t := entry.build(r)
	t.Name = name
	t.Description = entry.description
	return t, nil
}

// Navy is the dark card the shop uses on phones.
func Navy(r *lipgloss.Renderer) Theme {
	var (
		navy   = lipgloss.Color("#0d1a2a")
		panel  = lipgloss.Color("#1f2d3d")
		footer = lipgloss.Color("#070e17")
		orange = lipgloss.Color("#fb923c")
		green  = lipgloss.Color("#4ade80")
		white  = lipgloss.Color("#ffffff")
		gray   = lipgloss.Color("#9ca3af")
	)

	return Theme{
		Layout:     LayoutCard,
		Width:      44,
		Card:       r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(panel).Background(navy).Padding(1, 2),
		Tagline:    r.NewStyle().Foreground(green),
		Title:      r.NewStyle().Bold(true).Foreground(white),
		Badge:      r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(orange).Foreground(orange).Padding(0, 2),
		Panel:      r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(panel).Padding(0, 1),
		Label:      r.NewStyle().Foreground(gray),
		Value:      r.NewStyle().Bold(true).Foreground(white),
		Highlight:  r.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(orange).Foreground(orange).Padding(0, 1),
		Section:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#d1d5db")),
		Muted:      r.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		TotalBox:   r.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(panel).Background(footer).Padding(1, 2).Align(lipgloss.Center),
		TotalLabel: r.NewStyle().Bold(true).Foreground(orange),
		TotalValue: r.NewStyle().Bold(true).Foreground(white),
		Owner:      r.NewStyle().Bold(true).Foreground(green),
		Footer:     r.NewStyle().Foreground(gray),
	}
}

// Ledger is a light, printed-page look.
func Ledger(r *lipgloss.Renderer) Theme {
	var (
		ink    = lipgloss.Color("#111827")
		rule   = lipgloss.Color("#d1d5db")
		accent = lipgloss.Color("#c2410c")
		soft   = lipgloss.Color("#6b7280")
	)

	return Theme{
		Layout:     LayoutCard,
		Width:      44,
		Card:       r.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(ink).Padding(0, 1),
		Tagline:    r.NewStyle().Italic(true).Foreground(soft),
		Title:      r.NewStyle().Bold(true).Underline(true).Foreground(ink),
		Badge:      r.NewStyle().Foreground(accent),
		Panel:      r.NewStyle().Border(lipgloss.NormalBorder(), true, false).BorderForeground(rule),
		Label:      r.NewStyle().Foreground(soft),
		Value:      r.NewStyle().Foreground(ink),
		Highlight:  r.NewStyle().Bold(true).Foreground(accent),
		Section:    r.NewStyle().Bold(true).Foreground(ink),
		Muted:      r.NewStyle().Foreground(soft),
		TotalBox:   r.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(ink).Align(lipgloss.Center),
		TotalLabel: r.NewStyle().Bold(true).Foreground(accent),
		TotalValue: r.NewStyle().Bold(true).Foreground(ink),
		Owner:      r.NewStyle().Bold(true).Foreground(ink),
		Footer:     r.NewStyle().Foreground(soft),
	}
}

// Plain has no borders and no colour.
func Plain(r *lipgloss.Renderer) Theme {
	s := r.NewStyle()
	return Theme{
		Layout:     LayoutCard,
		Width:      40,
		Card:       s,
		Tagline:    s,
		Title:      s.Bold(true),
		Badge:      s,
		Panel:      s,
		Label:      s,
		Value:      s,
		Highlight:  s.Bold(true),
		Section:    s.Bold(true),
		Muted:      s,
		TotalBox:   s.Align(lipgloss.Center),
		TotalLabel: s.Bold(true),
		TotalValue: s.Bold(true),
		Owner:      s,
		Footer:     s,
	}
}

// Thermal renders the same slip that is sent to a receipt printer.
func Thermal(r *lipgloss.Renderer) Theme {
	t := Plain(r)
	t.Layout = LayoutSlip
	t.Width = SlipWidth58mm
	return t
}
