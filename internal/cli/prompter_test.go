package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/poultry-receipt/internal/billing"
	"github.com/Veraticus/poultry-receipt/internal/receipt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPromptSession() *billing.Session {
	day := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	return billing.NewSession(billing.WithClock(func() time.Time { return day }))
}

func TestPrompter_FillReceipt(t *testing.T) {
	input := strings.Join([]string{
		"",
		"2.5",
		"300",
		"2024-04-28 500",
		"300",
		"2024-04-29 abc",
		"",
	}, "\n") + "\n"

	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(input), &out, receipt.NewFormatter("en", ""))
	s := newPromptSession()

	require.NoError(t, p.FillReceipt(context.Background(), s))

	in := s.Input()
	assert.Equal(t, "2024-05-02", in.Date)
	assert.InDelta(t, 2.5, in.Weight.Float(), 1e-9)
	assert.InDelta(t, 300, in.Rate.Float(), 1e-9)
	require.Len(t, in.PreviousBills, 3)
	assert.Equal(t, "2024-04-28", in.PreviousBills[0].Date)
	assert.Equal(t, "2024-05-02", in.PreviousBills[1].Date, "amount-only bills default to today")
	assert.False(t, in.PreviousBills[2].Amount.Valid)

	totals := s.Totals()
	assert.InDelta(t, 750, totals.ItemTotal, 1e-9)
	assert.InDelta(t, 800, totals.PreviousTotal, 1e-9)
	assert.InDelta(t, 1550, totals.FinalTotal, 1e-9)

	assert.Contains(t, out.String(), "1,550")
	assert.Contains(t, out.String(), "Amount is zero")
}

func TestPrompter_ClearDateAndEarlyEOF(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("-\n4\n"), &out, nil)
	s := newPromptSession()

	require.NoError(t, p.FillReceipt(context.Background(), s))

	in := s.Input()
	assert.Empty(t, in.Date)
	assert.InDelta(t, 4, in.Weight.Float(), 1e-9)
	assert.False(t, in.Rate.Valid)
	assert.InDelta(t, 0, s.Totals().FinalTotal, 1e-9)
}

func TestPrompter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPrompter(strings.NewReader("2024-05-01\n"), &bytes.Buffer{}, nil)
	err := p.FillReceipt(ctx, newPromptSession())
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestFormatTable(t *testing.T) {
	out := FormatTable([]string{"Date", "Total"}, [][]string{{"02/05/2024", "1,550"}, {"03/05/2024", "90"}})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Date")
	assert.Contains(t, lines[1], "1,550")
	assert.Equal(t, strings.Index(lines[1], "1,550"), strings.Index(lines[2], "90"))
}
