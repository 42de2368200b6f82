package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/poultry-receipt/internal/receipt"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.state == StatePreview {
		body = m.renderPreview()
	} else {
		body = m.renderForm()
	}

	parts := []string{body}
	if line := m.renderStatus(); line != "" {
		parts = append(parts, line)
	}
	if m.config.ShowHelp {
		parts = append(parts, m.renderHelp())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// receiptView formats the current input the way it will be printed.
func (m Model) receiptView() receipt.View {
	in := m.session.Input()
	if m.service != nil {
		return m.service.View(in)
	}
	return receipt.NewView(in, receipt.Header{}, receipt.NewFormatter(receipt.DefaultLocale, ""))
}

func (m Model) renderForm() string {
	v := m.receiptView()

	title := "New receipt"
	if v.Header.ShopName != "" {
		title = v.Header.ShopName
	}

	fields := []string{
		m.renderField(focusDate, "Date", m.date.View()),
		m.renderField(focusWeight, receipt.LabelWeight, m.weight.View()),
		m.renderField(focusRate, receipt.LabelRate, m.rate.View()),
	}

	sections := []string{
		m.theme.Title.Render(title),
		m.theme.Subtitle.Render("Receipt date " + v.Date),
		m.theme.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, fields...)),
		m.renderBills(),
		m.renderTotals(v),
	}

	if m.session.Input().CanIssue() {
		sections = append(sections, m.theme.StatusSuccess.Render("Ready: press Ctrl+G to generate the receipt"))
	} else {
		sections = append(sections, m.theme.StatusPending.Render("Enter the weight and the rate to generate the receipt"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderField(field int, label, value string) string {
	style := m.theme.Label
	if m.focus == field {
		style = m.theme.FocusedLabel
	}
	return style.Render(label) + " " + value
}

func (m Model) renderBills() string {
	lines := []string{m.theme.Bold.Render(receipt.LabelPreviousBills)}

	if len(m.bills) == 0 {
		lines = append(lines, m.theme.StatusPending.Render("No previous bills. Ctrl+N adds one."))
	}

	for i, row := range m.bills {
		dateField := fixedFields + 2*i
		marker := "  "
		if m.focus == dateField || m.focus == dateField+1 {
			marker = m.theme.Title.Render("▸ ")
		}
		lines = append(lines, fmt.Sprintf("%s%-4s %s  %s",
			marker,
			fmt.Sprintf("#%d", row.id),
			row.date.View(),
			row.amount.View(),
		))
	}

	return m.theme.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderTotals(v receipt.View) string {
	rows := []string{
		m.theme.Label.Render(receipt.LabelItemTotal) + " " + m.theme.Normal.Render(v.ItemTotal),
		m.theme.Label.Render(receipt.LabelPreviousTotal) + " " + m.theme.Normal.Render(v.PreviousTotal),
		m.theme.FocusedLabel.Render(receipt.LabelFinalTotal) + " " + m.theme.Bold.Render(v.FinalTotal),
	}
	return m.theme.TotalsPanel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderPreview() string {
	t, err := receipt.GetTheme(m.receiptTheme, m.renderer)
	if err != nil {
		return m.theme.StatusError.Render(err.Error())
	}

	header := fmt.Sprintf("Theme: %s (%d/%d)  %s",
		t.Name, m.themeIndex()+1, len(m.themeNames), m.theme.Subtitle.Render(t.Description))

	parts := []string{
		m.theme.Title.Render(header),
		receipt.Render(m.receiptView(), t),
	}
	if m.sharing {
		parts = append(parts, m.spinner.View()+" "+m.theme.StatusPending.Render("Sharing..."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) themeIndex() int {
	for i, name := range m.themeNames {
		if name == m.receiptTheme {
			return i
		}
	}
	return 0
}

func (m Model) renderStatus() string {
	if m.status == nil {
		return ""
	}
	style := m.theme.StatusInfo
	switch m.status.kind {
	case StatusSuccess:
		style = m.theme.StatusSuccess
	case StatusWarning:
		style = m.theme.StatusWarning
	case StatusError:
		style = m.theme.StatusError
	}
	return style.Render(m.status.text)
}

func (m Model) renderHelp() string {
	if m.state == StatePreview {
		return m.help.View(previewKeys{m.keymap})
	}
	return strings.TrimRight(m.help.View(formKeys{m.keymap}), " ")
}
