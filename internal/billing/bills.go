package billing

import (
	"sync/atomic"
	"time"
)

// IDSource hands out bill ids that are unique for the life of a session.
type IDSource interface {
	NextID() BillID
}

// SequentialIDs is a counter-backed IDSource. The zero value starts at 1.
type SequentialIDs struct {
	last atomic.Int64
}

// NewSequentialIDs returns a source whose first id is after+1. Pass the
// largest id already in use when resuming from existing bills.
func NewSequentialIDs(after BillID) *SequentialIDs {
	s := &SequentialIDs{}
	s.last.Store(int64(after))
	return s
}

// NextID returns the next id.
func (s *SequentialIDs) NextID() BillID {
	return BillID(s.last.Add(1))
}

// MaxBillID returns the largest id in bills, or 0.
func MaxBillID(bills []PreviousBill) BillID {
	var maxID BillID
	for _, b := range bills {
		maxID = max(maxID, b.ID)
	}
	return maxID
}

// AddBill appends an empty bill dated today and returns the new input and
// the bill's id.
func AddBill(in ReceiptInput, ids IDSource, today time.Time) (ReceiptInput, BillID) {
	id := ids.NextID()
	out := in.Clone()
	out.PreviousBills = append(out.PreviousBills, PreviousBill{
		ID:   id,
		Date: today.Format(DateLayout),
	})
	return out, id
}

// UpdateBill sets one field of the bill with the given id. Amount text is
// coerced with ParseQuantity. When no bill matches, in is returned unchanged
// and found is false.
func UpdateBill(in ReceiptInput, id BillID, field BillField, value string) (out ReceiptInput, found bool) {
	idx := indexOf(in.PreviousBills, id)
	if idx < 0 {
		return in, false
	}

	out = in.Clone()
	switch field {
	case FieldDate:
		out.PreviousBills[idx].Date = value
	case FieldAmount:
		out.PreviousBills[idx].Amount = ParseQuantity(value)
	default:
		return in, false
	}
	return out, true
}

// RemoveBill deletes the bill with the given id, keeping the order of the rest.
func RemoveBill(in ReceiptInput, id BillID) (out ReceiptInput, found bool) {
	idx := indexOf(in.PreviousBills, id)
	if idx < 0 {
		return in, false
	}

	out = in
	out.PreviousBills = make([]PreviousBill, 0, len(in.PreviousBills)-1)
	out.PreviousBills = append(out.PreviousBills, in.PreviousBills[:idx]...)
	out.PreviousBills = append(out.PreviousBills, in.PreviousBills[idx+1:]...)
	return out, true
}

func indexOf(bills []PreviousBill, id BillID) int {
	for i, b := range bills {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// EnsureIDs gives every bill without an id, or with an id already used
// earlier in the list, a fresh one. Input decoded from JSON often omits ids.
func EnsureIDs(in ReceiptInput) ReceiptInput {
	out := in.Clone()
	ids := NewSequentialIDs(MaxBillID(out.PreviousBills))
	seen := make(map[BillID]bool, len(out.PreviousBills))
	for i := range out.PreviousBills {
		id := out.PreviousBills[i].ID
		if id <= 0 || seen[id] {
			id = ids.NextID()
			out.PreviousBills[i].ID = id
		}
		seen[id] = true
	}
	return out
}
