// Package themes holds the color schemes of the interactive form.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI chrome around the receipt.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Label         lipgloss.Style
	FocusedLabel  lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Panel         lipgloss.Style
	TotalsPanel   lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusPending lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
}

func build(primary, success, warning, errColor, info, fg, border, muted lipgloss.Color) Theme {
	return Theme{
		Primary: primary,
		Muted:   muted,
		Border:  border,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Label: lipgloss.NewStyle().
			Foreground(muted).
			Width(22),
		FocusedLabel: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Width(22),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		TotalsPanel: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(primary).
			Padding(0, 1),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(warning).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(info).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
	}
}

// Default matches the navy receipt: orange accents on a dark terminal.
var Default = build(
	lipgloss.Color("#fb923c"),
	lipgloss.Color("#4ade80"),
	lipgloss.Color("#f59e0b"),
	lipgloss.Color("#ef4444"),
	lipgloss.Color("#60a5fa"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#1f2d3d"),
	lipgloss.Color("#9ca3af"),
)

// Light suits terminals with a light background.
var Light = build(
	lipgloss.Color("#c2410c"),
	lipgloss.Color("#15803d"),
	lipgloss.Color("#b45309"),
	lipgloss.Color("#b91c1c"),
	lipgloss.Color("#1d4ed8"),
	lipgloss.Color("#111827"),
	lipgloss.Color("#d1d5db"),
	lipgloss.Color("#6b7280"),
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "light":
		return Light
	default:
		return Default
	}
}
