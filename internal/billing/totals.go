package billing

// ComputeTotals derives the receipt totals. Unset or malformed numbers count
// as zero, so a half-typed form still shows a total.
func ComputeTotals(in ReceiptInput) ReceiptTotals {
	item := in.Weight.Float() * in.Rate.Float()

	var previous float64
	for _, b := range in.PreviousBills {
		previous += b.Amount.Float()
	}

	return ReceiptTotals{
		ItemTotal:     item,
		PreviousTotal: previous,
		FinalTotal:    item + previous,
	}
}

// FilterDisplayableBills returns the bills worth printing: those with a
// strictly positive amount. The argument is left untouched.
func FilterDisplayableBills(bills []PreviousBill) []PreviousBill {
	out := make([]PreviousBill, 0, len(bills))
	for _, b := range bills {
		if b.Amount.Float() > 0 {
			out = append(out, b)
		}
	}
	return out
}
