package testing

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "Total bill", StripANSI("\x1b[1;38;5;208mTotal bill\x1b[0m"))
	assert.Equal(t, "plain", StripANSI("plain"))
}

func TestContainsInOrder(t *testing.T) {
	out := "Weight\nRate\nTotal bill"

	assert.True(t, ContainsInOrder(out, "Weight", "Rate", "Total"))
	assert.False(t, ContainsInOrder(out, "Total", "Weight"))
	assert.True(t, ContainsInOrder(out))
}

func TestTimeController(t *testing.T) {
	start := time.Date(2024, 5, 2, 23, 0, 0, 0, time.UTC)
	tc := NewTimeController(start)

	assert.Equal(t, start, tc.Now())
	tc.Advance(2 * time.Hour)
	assert.Equal(t, 3, tc.Now().Day())

	tc.Set(start)
	assert.Equal(t, start, tc.Now())
}

func TestKeys(t *testing.T) {
	msgs := Keys(tea.KeyTab, "2.5", WindowSize(80, 24))

	assert.Equal(t, []tea.Msg{
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2.5")},
		tea.WindowSizeMsg{Width: 80, Height: 24},
	}, msgs)
}
