package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the receipt form until the user quits and returns the final
// model so callers can inspect the last input.
func Run(ctx context.Context, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m := newModel(ctx, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil {
		return m, fmt.Errorf("TUI error: %w", err)
	}

	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return m, nil
}
