package billing

import (
	"log/slog"
	"time"
)

// Clock returns the current time. Tests pin it.
type Clock func() time.Time

// Session owns the single ReceiptInput being edited. It is not safe for
// concurrent use; one form owns one session.
type Session struct {
	ids    IDSource
	now    Clock
	input  ReceiptInput
	seeded bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock overrides time.Now.
func WithClock(now Clock) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// WithIDSource overrides the default sequential ids.
func WithIDSource(ids IDSource) SessionOption {
	return func(s *Session) {
		s.ids = ids
	}
}

// WithInput starts the session from existing input instead of a blank form.
// The default id source resumes after the largest bill id present.
func WithInput(in ReceiptInput) SessionOption {
	return func(s *Session) {
		s.input = in.Clone()
		s.seeded = true
	}
}

// NewSession starts a blank receipt dated today.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if !s.seeded {
		s.input = NewReceiptInput(s.now())
	}
	if s.input.PreviousBills == nil {
		s.input.PreviousBills = []PreviousBill{}
	}
	if s.ids == nil {
		s.ids = NewSequentialIDs(MaxBillID(s.input.PreviousBills))
	}
	return s
}

// Input returns a snapshot of the current input.
func (s *Session) Input() ReceiptInput {
	return s.input.Clone()
}

// Totals computes totals for the current input.
func (s *Session) Totals() ReceiptTotals {
	return ComputeTotals(s.input)
}

// SetDate replaces the receipt date.
func (s *Session) SetDate(date string) {
	s.input.Date = date
}

// ClearDate empties the receipt date; it then renders as the placeholder.
func (s *Session) ClearDate() {
	s.input.Date = ""
}

// SetWeight parses and stores the weight text.
func (s *Session) SetWeight(raw string) {
	s.input.Weight = ParseQuantity(raw)
}

// SetRate parses and stores the rate text.
func (s *Session) SetRate(raw string) {
	s.input.Rate = ParseQuantity(raw)
}

// AddBill appends an empty bill dated today.
func (s *Session) AddBill() BillID {
	var id BillID
	s.input, id = AddBill(s.input, s.ids, s.now())
	return id
}

// UpdateBill edits one field of a bill. Unknown ids are ignored.
func (s *Session) UpdateBill(id BillID, field BillField, value string) bool {
	var found bool
	s.input, found = UpdateBill(s.input, id, field, value)
	if !found {
		slog.Debug("Ignoring update for unknown bill", "bill_id", id, "field", field)
	}
	return found
}

// RemoveBill deletes a bill. Unknown ids are ignored.
func (s *Session) RemoveBill(id BillID) bool {
	var found bool
	s.input, found = RemoveBill(s.input, id)
	if !found {
		slog.Debug("Ignoring removal of unknown bill", "bill_id", id)
	}
	return found
}

// Reset discards all edits and starts a blank receipt dated today. Bill ids
// keep counting so none is ever reused within the session.
func (s *Session) Reset() {
	s.input = NewReceiptInput(s.now())
}
