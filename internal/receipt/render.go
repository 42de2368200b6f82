package receipt

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Render draws a receipt with a theme.
func Render(v View, t Theme) string {
	if t.Layout == LayoutSlip {
		return strings.TrimRight(string(Slip(v, t.Width, false)), "\n")
	}
	return renderCard(v, t)
}

func renderCard(v View, t Theme) string {
	w := t.Width - t.Card.GetHorizontalFrameSize()
	if w < 16 {
		w = 16
	}

	var head []string
	if v.Header.Tagline != "" {
		head = append(head, center(t.Tagline.Render(v.Header.Tagline), w))
	}
	head = append(head,
		center(t.Title.Render(v.Header.ShopName), w),
		center(t.Badge.Render(v.Date), w),
	)

	sections := []string{
		lipgloss.JoinVertical(lipgloss.Left, head...),
		renderItems(v, t, w),
	}
	if v.HasPreviousBills() {
		sections = append(sections, renderPrevious(v, t, w))
	}
	sections = append(sections, renderTotal(v, t, w))
	if footer := renderFooter(v, t, w); footer != "" {
		sections = append(sections, footer)
	}

	body := strings.Join(sections, "\n\n")
	return fit(t.Card, t.Width).Render(body)
}

func renderItems(v View, t Theme, w int) string {
	cw := w - t.Panel.GetHorizontalFrameSize()
	hw := cw - t.Highlight.GetHorizontalFrameSize()

	rows := []string{
		row(cw, t.Label.Render(LabelWeight), t.Value.Render(v.Weight)),
		row(cw, t.Label.Render(LabelRate), t.Value.Render(v.Rate)),
		fit(t.Highlight, cw).Render(row(hw, LabelItemTotal, v.ItemTotal)),
	}
	return fit(t.Panel, w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderPrevious(v View, t Theme, w int) string {
	cw := w - t.Panel.GetHorizontalFrameSize()

	rows := make([]string, 0, len(v.Bills)+2)
	for _, b := range v.Bills {
		rows = append(rows, row(cw, t.Muted.Render(b.Date), t.Value.Render(b.Amount)))
	}
	if v.ShowPreviousTotal() {
		rows = append(rows,
			t.Muted.Render(strings.Repeat("─", cw)),
			row(cw, t.Section.Render(LabelPreviousTotal), t.Section.Render(v.PreviousTotal)),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		t.Section.Render(LabelPreviousBills),
		fit(t.Panel, w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
	)
}

func renderTotal(v View, t Theme, w int) string {
	cw := w - t.TotalBox.GetHorizontalFrameSize()
	return fit(t.TotalBox, w).Render(lipgloss.JoinVertical(lipgloss.Center,
		center(t.TotalLabel.Render(LabelFinalTotal), cw),
		center(t.TotalValue.Render(v.FinalTotal), cw),
	))
}

func renderFooter(v View, t Theme, w int) string {
	var lines []string
	if v.Header.Owner != "" {
		lines = append(lines, center(t.Owner.Render(v.Header.Owner), w))
	}
	if v.Header.Country != "" {
		lines = append(lines, center(t.Footer.Render(v.Header.Country), w))
	}
	return strings.Join(lines, "\n")
}

// fit sizes a style so that, borders and margins included, it spans total columns.
func fit(s lipgloss.Style, total int) lipgloss.Style {
	return s.Width(total - s.GetHorizontalBorderSize() - s.GetHorizontalMargins())
}

// row puts left and right at the edges of a line width columns wide.
func row(width int, left, right string) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func center(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
