package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/poultry-receipt/internal/billing"
	"github.com/Veraticus/poultry-receipt/internal/common"
	"github.com/Veraticus/poultry-receipt/internal/ledger"
	"github.com/Veraticus/poultry-receipt/internal/receipt"
	"github.com/charmbracelet/lipgloss"
)

// ErrIncomplete is returned when a receipt has no weight or no rate.
var ErrIncomplete = errors.New("weight and rate are required to issue a receipt")

// Recorder stores issued receipts.
type Recorder interface {
	Record(ctx context.Context, e *ledger.Entry) error
}

// Issued is the outcome of a successful share.
type Issued struct {
	// Entry is nil when no ledger is configured or recording failed.
	Entry    *ledger.Entry
	Artifact Artifact
}

// Service renders receipts, hands them to a sharer and records what was
// issued. It allows one share at a time.
type Service struct {
	sharer    Sharer
	recorder  Recorder
	formatter *receipt.Formatter
	renderer  *lipgloss.Renderer
	now       func() time.Time
	header    receipt.Header
	format    string
	retry     common.RetryOptions
	slipWidth int
	width     int
	mu        sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder records every successful share.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithHeader sets the shop branding.
func WithHeader(h receipt.Header) Option {
	return func(s *Service) { s.header = h }
}

// WithFormatter sets number formatting.
func WithFormatter(f *receipt.Formatter) Option {
	return func(s *Service) { s.formatter = f }
}

// WithFormat selects FormatText or FormatESCPOS for byte targets.
func WithFormat(format string) Option {
	return func(s *Service) { s.format = format }
}

// WithSlipWidth sets the printer width in characters.
func WithSlipWidth(chars int) Option {
	return func(s *Service) { s.slipWidth = chars }
}

// WithWidth overrides the theme width. Zero keeps the theme's own.
func WithWidth(cols int) Option {
	return func(s *Service) { s.width = cols }
}

// WithRetry sets the retry policy for retryable share failures.
func WithRetry(opts common.RetryOptions) Option {
	return func(s *Service) { s.retry = opts }
}

// WithClock sets the issue time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a service sharing through sharer.
func NewService(sharer Sharer, opts ...Option) *Service {
	s := &Service{
		sharer:    sharer,
		formatter: receipt.NewFormatter(receipt.DefaultLocale, ""),
		// Shared receipts are plain text; styles keep their layout but
		// never emit escape codes.
		renderer:  lipgloss.NewRenderer(io.Discard),
		now:       time.Now,
		format:    FormatText,
		slipWidth: receipt.SlipWidth58mm,
		retry:     common.RetryOptions{MaxAttempts: 3},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Target names the sharer in use.
func (s *Service) Target() string {
	return s.sharer.Name()
}

// View formats an input with the service's header and formatter.
func (s *Service) View(in billing.ReceiptInput) receipt.View {
	return receipt.NewView(in, s.header, s.formatter)
}

// Render draws an input as plain text in the named theme.
func (s *Service) Render(in billing.ReceiptInput, themeName string) (string, error) {
	theme, err := receipt.GetTheme(themeName, s.renderer)
	if err != nil {
		return "", err
	}
	if s.width > 0 {
		theme.Width = s.width
	}
	return receipt.Render(s.View(in), theme), nil
}

// Prepare builds the artifact for an input without sharing it.
func (s *Service) Prepare(in billing.ReceiptInput, themeName string) (Artifact, error) {
	text, err := s.Render(in, themeName)
	if err != nil {
		return Artifact{}, err
	}
	return NewArtifact(s.View(in), text, s.format, s.slipWidth), nil
}

// Share renders, delivers and records one receipt. ErrCancelled is
// returned as is and should be ignored by callers.
func (s *Service) Share(ctx context.Context, in billing.ReceiptInput, themeName string) (Issued, error) {
	if !s.mu.TryLock() {
		return Issued{}, ErrShareInProgress
	}
	defer s.mu.Unlock()

	if !in.CanIssue() {
		return Issued{}, ErrIncomplete
	}

	artifact, err := s.Prepare(in, themeName)
	if err != nil {
		return Issued{}, fmt.Errorf("failed to prepare receipt: %w", err)
	}

	err = common.WithRetry(ctx, func() error {
		shareErr := s.sharer.Share(ctx, artifact)
		var se *ShareError
		if errors.As(shareErr, &se) && se.Retryable {
			return &common.RetryableError{Err: shareErr, Retryable: true}
		}
		return shareErr
	}, s.retry)

	if errors.Is(err, ErrCancelled) {
		slog.Debug("Share cancelled", "target", s.Target())
		return Issued{}, ErrCancelled
	}
	if err != nil {
		common.LogError(err, "Share failed", common.Fields{"target": s.Target(), "theme": themeName})
		return Issued{}, err
	}

	issued := Issued{Artifact: artifact}
	if s.recorder != nil {
		entry := ledger.NewEntry(in, themeName, s.Target())
		entry.IssuedAt = s.now()
		if recErr := s.recorder.Record(ctx, &entry); recErr != nil {
			slog.Warn("Receipt shared but not recorded", "error", recErr)
		} else {
			issued.Entry = &entry
		}
	}

	slog.Info("Receipt shared",
		"target", s.Target(),
		"theme", themeName,
		"file", artifact.FileName,
		"final_total", billing.ComputeTotals(in).FinalTotal)

	return issued, nil
}
