package testing

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Key creates a key message for a special key such as tab or ctrl+n.
func Key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// TypeText creates the message a terminal sends when text is typed or pasted.
func TypeText(s string) tea.KeyMsg {
	return tea.KeyMsg{
		Type:  tea.KeyRunes,
		Runes: []rune(s),
	}
}

// Keys turns a mix of key types and strings into messages, in order.
func Keys(keys ...any) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(keys))
	for _, k := range keys {
		switch v := k.(type) {
		case tea.KeyType:
			msgs = append(msgs, Key(v))
		case string:
			msgs = append(msgs, TypeText(v))
		case tea.Msg:
			msgs = append(msgs, v)
		}
	}
	return msgs
}

// WindowSize creates a window size message for testing responsive layouts.
func WindowSize(width, height int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{
		Width:  width,
		Height: height,
	}
}
