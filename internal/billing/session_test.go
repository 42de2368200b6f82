package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(opts ...SessionOption) *Session {
	opts = append([]SessionOption{WithClock(func() time.Time { return fixedDay })}, opts...)
	return NewSession(opts...)
}

func TestNewSession_Defaults(t *testing.T) {
	s := newTestSession()
	in := s.Input()

	assert.Equal(t, "2024-05-02", in.Date)
	assert.False(t, in.Weight.Valid)
	assert.False(t, in.Rate.Valid)
	assert.Empty(t, in.PreviousBills)
	assert.Equal(t, ReceiptTotals{}, s.Totals())
}

func TestSession_Edits(t *testing.T) {
	s := newTestSession()

	s.SetWeight("2.5")
	s.SetRate("300")
	a := s.AddBill()
	b := s.AddBill()
	c := s.AddBill()
	assert.True(t, s.UpdateBill(a, FieldAmount, "500"))
	assert.True(t, s.UpdateBill(c, FieldAmount, "300"))

	totals := s.Totals()
	assert.InDelta(t, 750, totals.ItemTotal, 1e-9)
	assert.InDelta(t, 800, totals.PreviousTotal, 1e-9)
	assert.InDelta(t, 1550, totals.FinalTotal, 1e-9)

	displayable := FilterDisplayableBills(s.Input().PreviousBills)
	require.Len(t, displayable, 2)
	assert.Equal(t, a, displayable[0].ID)
	assert.Equal(t, c, displayable[1].ID)

	assert.True(t, s.RemoveBill(b))
	assert.False(t, s.RemoveBill(b))
	assert.False(t, s.UpdateBill(b, FieldAmount, "1"))
	assert.Len(t, s.Input().PreviousBills, 2)
}

func TestSession_ClearDate(t *testing.T) {
	s := newTestSession()
	s.ClearDate()
	assert.Empty(t, s.Input().Date)

	s.SetDate("2023-12-31")
	assert.Equal(t, "2023-12-31", s.Input().Date)
}

func TestSession_InputIsSnapshot(t *testing.T) {
	s := newTestSession()
	s.AddBill()

	snap := s.Input()
	snap.PreviousBills[0].Date = "1999-01-01"

	assert.Equal(t, "2024-05-02", s.Input().PreviousBills[0].Date)
}

func TestSession_IDsNeverReused(t *testing.T) {
	s := newTestSession()
	first := s.AddBill()
	s.RemoveBill(first)
	s.Reset()
	second := s.AddBill()

	assert.NotEqual(t, first, second)
}

func TestSession_WithInputResumesIDs(t *testing.T) {
	seed := ReceiptInput{
		Date:          "2024-04-01",
		PreviousBills: []PreviousBill{bill(5, "10"), bill(9, "20")},
	}
	s := newTestSession(WithInput(seed))

	id := s.AddBill()

	assert.Equal(t, BillID(10), id)
	assert.Equal(t, "2024-04-01", s.Input().Date)
	assert.Len(t, seed.PreviousBills, 2)
}
