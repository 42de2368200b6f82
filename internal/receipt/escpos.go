package receipt

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ESC/POS control bytes.
const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

// Slip alignment.
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character sizes.
const (
	FontNormal = 0x00
	FontDouble = 0x11
	FontTall   = 0x01
)

// SlipWidth58mm and SlipWidth80mm are the usual thermal paper widths in characters.
const (
	SlipWidth58mm = 32
	SlipWidth80mm = 48
)

// Document builds a fixed-width receipt slip. With control codes enabled it
// is an ESC/POS byte stream for a thermal printer; without them it is the
// same slip as plain text.
type Document struct {
	buf     bytes.Buffer
	width   int
	align   int
	control bool
}

// NewDocument starts a slip of charWidth columns.
func NewDocument(charWidth int, control bool) *Document {
	if charWidth <= 0 {
		charWidth = SlipWidth58mm
	}
	d := &Document{width: charWidth, control: control}
	d.Init()
	return d
}

// Init resets the printer (ESC @).
func (d *Document) Init() *Document {
	d.command(esc, '@')
	return d
}

// SetAlign sets alignment for the following lines.
func (d *Document) SetAlign(align int) *Document {
	d.align = align
	d.command(esc, 'a', byte(align))
	return d
}

// SetBold toggles emphasis.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.command(esc, 'E', b)
	return d
}

// SetFontSize sets the character size.
func (d *Document) SetFontSize(size byte) *Document {
	d.command(gs, '!', size)
	return d
}

// Text writes one line.
func (d *Document) Text(s string) *Document {
	if !d.control {
		s = d.pad(s)
	}
	d.buf.WriteString(s)
	d.buf.WriteByte(lf)
	return d
}

// Separator writes a full-width rule.
func (d *Document) Separator(char string) *Document {
	d.buf.WriteString(strings.Repeat(char, d.width))
	d.buf.WriteByte(lf)
	return d
}

// KeyValue writes a left label and a right-aligned value on one line.
func (d *Document) KeyValue(key, value string) *Document {
	spaces := d.width - lipgloss.Width(key) - lipgloss.Width(value)
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(value)
	d.buf.WriteByte(lf)
	return d
}

// FeedLines writes n blank lines.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(lf)
	}
	return d
}

// PartialCut asks the printer to cut the paper.
func (d *Document) PartialCut() *Document {
	d.command(gs, 'V', 0x01)
	return d
}

// Bytes returns the slip.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func (d *Document) command(b ...byte) {
	if d.control {
		d.buf.Write(b)
	}
}

// pad emulates printer alignment for plain text.
func (d *Document) pad(s string) string {
	w := lipgloss.Width(s)
	if w >= d.width {
		return s
	}
	switch d.align {
	case AlignCenter:
		return strings.Repeat(" ", (d.width-w)/2) + s
	case AlignRight:
		return strings.Repeat(" ", d.width-w) + s
	default:
		return s
	}
}

// Slip lays a receipt out on a Document.
func Slip(v View, charWidth int, control bool) []byte {
	d := NewDocument(charWidth, control)

	d.SetAlign(AlignCenter)
	if v.Header.Tagline != "" {
		d.Text(v.Header.Tagline)
	}
	d.SetBold(true).SetFontSize(FontTall)
	d.Text(v.Header.ShopName)
	d.SetFontSize(FontNormal).SetBold(false)
	d.Text(v.Date)
	d.SetAlign(AlignLeft)
	d.Separator("-")

	d.KeyValue(LabelWeight, v.Weight)
	d.KeyValue(LabelRate, v.Rate)
	d.SetBold(true).KeyValue(LabelItemTotal, v.ItemTotal).SetBold(false)

	if v.HasPreviousBills() {
		d.Separator("-")
		d.Text(LabelPreviousBills)
		for _, b := range v.Bills {
			d.KeyValue("  "+b.Date, b.Amount)
		}
		if v.ShowPreviousTotal() {
			d.KeyValue(LabelPreviousTotal, v.PreviousTotal)
		}
	}

	d.Separator("=")
	d.SetBold(true).SetFontSize(FontTall)
	d.KeyValue(LabelFinalTotal, v.FinalTotal)
	d.SetFontSize(FontNormal).SetBold(false)
	d.Separator("=")

	d.SetAlign(AlignCenter)
	if v.Header.Owner != "" {
		d.Text(v.Header.Owner)
	}
	if v.Header.Country != "" {
		d.Text(v.Header.Country)
	}
	d.SetAlign(AlignLeft)

	if control {
		d.FeedLines(3).PartialCut()
	}
	return d.Bytes()
}
