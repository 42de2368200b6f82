package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/poultry-receipt/internal/billing"
	"github.com/Veraticus/poultry-receipt/internal/receipt"
)

// Prompter fills a receipt by asking one question per line. It is the
// fallback for terminals that cannot run the full-screen form.
type Prompter struct {
	writer    io.Writer
	reader    *LineReader
	formatter *receipt.Formatter
}

// NewPrompter creates a prompter with the given reader and writer.
func NewPrompter(reader io.Reader, writer io.Writer, f *receipt.Formatter) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	if f == nil {
		f = receipt.NewFormatter(receipt.DefaultLocale, "")
	}

	return &Prompter{
		reader:    NewLineReader(reader),
		writer:    writer,
		formatter: f,
	}
}

// FillReceipt asks for the date, weight, rate and previous bills and
// applies every answer to the session. Running out of input ends the
// questions early and keeps what was entered.
func (p *Prompter) FillReceipt(ctx context.Context, s *billing.Session) error {
	p.println(FormatTitle("New receipt"))

	err := p.fill(ctx, s)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		return err
	}

	p.printTotals(s.Totals())
	return nil
}

func (p *Prompter) fill(ctx context.Context, s *billing.Session) error {
	today := s.Input().Date
	date, err := p.ask(ctx, fmt.Sprintf("Date [%s, - to clear]", today))
	if err != nil {
		return err
	}
	switch date {
	case "":
	case "-":
		s.ClearDate()
	default:
		s.SetDate(date)
	}

	weight, err := p.ask(ctx, receipt.LabelWeight)
	if err != nil {
		return err
	}
	s.SetWeight(weight)

	rate, err := p.ask(ctx, receipt.LabelRate)
	if err != nil {
		return err
	}
	s.SetRate(rate)

	p.println(SubtleStyle.Render("Previous bills: one per line as \"YYYY-MM-DD amount\" or just an amount. Empty line to finish."))
	for {
		line, err := p.ask(ctx, "Bill")
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}
		p.addBill(s, line)
	}
}

func (p *Prompter) addBill(s *billing.Session, line string) {
	fields := strings.Fields(line)

	id := s.AddBill()
	switch len(fields) {
	case 1:
		s.UpdateBill(id, billing.FieldAmount, fields[0])
	default:
		s.UpdateBill(id, billing.FieldDate, fields[0])
		s.UpdateBill(id, billing.FieldAmount, fields[len(fields)-1])
	}

	amount := billing.CoerceNumber(fields[len(fields)-1])
	if amount == 0 {
		p.println(FormatWarning("Amount is zero, the bill will not be printed."))
	}
	slog.Debug("Bill added from prompt", "id", id, "amount", amount)
}

func (p *Prompter) ask(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return p.reader.ReadLine(ctx)
}

func (p *Prompter) printTotals(t billing.ReceiptTotals) {
	p.println("")
	p.println(FormatTable(
		[]string{"", "Amount"},
		[][]string{
			{receipt.LabelItemTotal, p.formatter.Amount(t.ItemTotal)},
			{receipt.LabelPreviousTotal, p.formatter.Amount(t.PreviousTotal)},
			{receipt.LabelFinalTotal, p.formatter.Amount(t.FinalTotal)},
		},
	))
}

func (p *Prompter) println(s string) {
	if _, err := fmt.Fprintln(p.writer, s); err != nil {
		slog.Warn("Failed to write prompt output", "error", err)
	}
}
