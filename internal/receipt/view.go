package receipt

import (
	"github.com/Veraticus/poultry-receipt/internal/billing"
)

// Header is the shop branding printed around every receipt.
type Header struct {
	ShopName string `json:"shopName"`
	Tagline  string `json:"tagline,omitempty"`
	Owner    string `json:"owner,omitempty"`
	Country  string `json:"country,omitempty"`
}

// BillLine is one displayed previous balance.
type BillLine struct {
	Date   string         `json:"date"`
	Amount string         `json:"amount"`
	ID     billing.BillID `json:"id"`
}

// View is the fully formatted content of a receipt. Themes only decide how
// it looks.
type View struct {
	Header        Header                `json:"header"`
	Date          string                `json:"date"`
	Weight        string                `json:"weight"`
	Rate          string                `json:"rate"`
	ItemTotal     string                `json:"itemTotal"`
	PreviousTotal string                `json:"previousTotal"`
	FinalTotal    string                `json:"finalTotal"`
	Bills         []BillLine            `json:"bills"`
	Totals        billing.ReceiptTotals `json:"totals"`
}

// NewView formats an input for display. Only bills with a positive amount
// are listed.
func NewView(in billing.ReceiptInput, header Header, f *Formatter) View {
	totals := billing.ComputeTotals(in)
	shown := billing.FilterDisplayableBills(in.PreviousBills)

	lines := make([]BillLine, 0, len(shown))
	for _, b := range shown {
		lines = append(lines, BillLine{
			ID:     b.ID,
			Date:   FormatDate(b.Date),
			Amount: f.Amount(b.Amount.Float()),
		})
	}

	return View{
		Header:        header,
		Date:          FormatDate(in.Date),
		Weight:        f.Amount(in.Weight.Float()),
		Rate:          f.Amount(in.Rate.Float()),
		ItemTotal:     f.Money(totals.ItemTotal),
		PreviousTotal: f.Amount(totals.PreviousTotal),
		FinalTotal:    f.Amount(totals.FinalTotal),
		Bills:         lines,
		Totals:        totals,
	}
}

// HasPreviousBills returns true if any previous balance is listed.
func (v View) HasPreviousBills() bool {
	return len(v.Bills) > 0
}

// ShowPreviousTotal returns true when a subtotal row adds information, which
// is only the case with more than one listed bill.
func (v View) ShowPreviousTotal() bool {
	return len(v.Bills) > 1
}
