package billing

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date layout used by every date field.
const DateLayout = "2006-01-02"

// BillID identifies a previous bill within one session.
type BillID int64

// BillField names an editable field of a previous bill.
type BillField string

const (
	// FieldDate is the bill's calendar date.
	FieldDate BillField = "date"
	// FieldAmount is the bill's outstanding amount.
	FieldAmount BillField = "amount"
)

// ParseBillField maps user text to a bill field.
func ParseBillField(s string) (BillField, error) {
	switch BillField(s) {
	case FieldDate, FieldAmount:
		return BillField(s), nil
	default:
		return "", fmt.Errorf("unknown bill field %q (use date or amount)", s)
	}
}

// PreviousBill is one outstanding balance carried onto the receipt.
type PreviousBill struct {
	Date   string   `json:"date"`
	Amount Quantity `json:"amount"`
	ID     BillID   `json:"id"`
}

// ReceiptInput is everything the shopkeeper types for one receipt.
type ReceiptInput struct {
	Date          string         `json:"date"`
	PreviousBills []PreviousBill `json:"previousBills"`
	Weight        Quantity       `json:"weight"`
	Rate          Quantity       `json:"rate"`
}

// ReceiptTotals are derived from a ReceiptInput and never stored.
type ReceiptTotals struct {
	ItemTotal     float64 `json:"itemTotal"`
	PreviousTotal float64 `json:"previousTotal"`
	FinalTotal    float64 `json:"finalTotal"`
}

// NewReceiptInput returns the input a fresh session starts with.
func NewReceiptInput(today time.Time) ReceiptInput {
	return ReceiptInput{
		Date:          today.Format(DateLayout),
		PreviousBills: []PreviousBill{},
	}
}

// CanIssue reports whether a receipt may be generated: both weight and rate
// must be non-zero.
func (in ReceiptInput) CanIssue() bool {
	return in.Weight.Float() != 0 && in.Rate.Float() != 0
}

// Clone returns a copy that shares no memory with in.
func (in ReceiptInput) Clone() ReceiptInput {
	out := in
	out.PreviousBills = make([]PreviousBill, len(in.PreviousBills))
	copy(out.PreviousBills, in.PreviousBills)
	return out
}
