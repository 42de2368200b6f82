package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/poultry-receipt/internal/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is the snapshot of one issued receipt.
type Entry struct {
	IssuedAt      time.Time       `db:"issued_at" json:"issuedAt"`
	ReceiptDate   string          `db:"receipt_date" json:"receiptDate"`
	Theme         string          `db:"theme" json:"theme"`
	Target        string          `db:"target" json:"target"`
	Weight        decimal.Decimal `db:"weight" json:"weight"`
	Rate          decimal.Decimal `db:"rate" json:"rate"`
	ItemTotal     decimal.Decimal `db:"item_total" json:"itemTotal"`
	PreviousTotal decimal.Decimal `db:"previous_total" json:"previousTotal"`
	FinalTotal    decimal.Decimal `db:"final_total" json:"finalTotal"`
	BillCount     int             `db:"bill_count" json:"billCount"`
	ID            uuid.UUID       `db:"id" json:"id"`
}

// NewEntry snapshots an input and its totals. Only bills that appear on the
// receipt are counted.
func NewEntry(in billing.ReceiptInput, theme, target string) Entry {
	totals := billing.ComputeTotals(in)
	return Entry{
		ReceiptDate:   in.Date,
		Theme:         theme,
		Target:        target,
		Weight:        decimal.NewFromFloat(in.Weight.Float()),
		Rate:          decimal.NewFromFloat(in.Rate.Float()),
		ItemTotal:     decimal.NewFromFloat(totals.ItemTotal),
		PreviousTotal: decimal.NewFromFloat(totals.PreviousTotal),
		FinalTotal:    decimal.NewFromFloat(totals.FinalTotal),
		BillCount:     len(billing.FilterDisplayableBills(in.PreviousBills)),
	}
}

const entryColumns = `id, issued_at, receipt_date, weight, rate, item_total, previous_total,
	final_total, bill_count, theme, target`

// Record stores an entry. A missing id or issue time is filled in and
// written back to e.
func (s *Store) Record(ctx context.Context, e *Entry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("%w: nil entry", ErrInvalidEntry)
	}
	if e.BillCount < 0 {
		return fmt.Errorf("%w: negative bill count", ErrInvalidEntry)
	}

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.IssuedAt.IsZero() {
		e.IssuedAt = time.Now()
	}
	e.IssuedAt = e.IssuedAt.UTC()

	_, err := s.db.NamedExecContext(ctx, `INSERT INTO receipts (`+entryColumns+`)
		VALUES (:id, :issued_at, :receipt_date, :weight, :rate, :item_total, :previous_total,
			:final_total, :bill_count, :theme, :target)`, e)
	if err != nil {
		return fmt.Errorf("failed to record receipt: %w", err)
	}
	return nil
}

// List returns the most recently issued entries first. A limit of zero or
// less returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + entryColumns + ` FROM receipts ORDER BY issued_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	entries := []Entry{}
	if err := s.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	return entries, nil
}

// Get returns the entry with the given id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Entry, error) {
	if err := validateContext(ctx); err != nil {
		return Entry{}, err
	}

	var e Entry
	err := s.db.GetContext(ctx, &e, `SELECT `+entryColumns+` FROM receipts WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get receipt: %w", err)
	}
	return e, nil
}

// Find resolves a full id or a unique id prefix.
func (s *Store) Find(ctx context.Context, ref string) (Entry, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if id, err := uuid.Parse(ref); err == nil {
		return s.Get(ctx, id)
	}
	if ref == "" || strings.ContainsAny(ref, "%_") {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}

	var matches []Entry
	err := s.db.SelectContext(ctx, &matches,
		`SELECT `+entryColumns+` FROM receipts WHERE id LIKE ? LIMIT 2`, ref+"%")
	if err != nil {
		return Entry{}, fmt.Errorf("failed to find receipt: %w", err)
	}

	switch len(matches) {
	case 0:
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return Entry{}, fmt.Errorf("%w: %q", ErrAmbiguousID, ref)
	}
}
