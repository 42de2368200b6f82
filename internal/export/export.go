// Package export delivers rendered receipts to a share target.
package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/poultry-receipt/internal/receipt"
	"github.com/google/uuid"
)

// Share outcomes that are not ordinary failures.
var (
	// ErrCancelled means the user backed out. Callers ignore it.
	ErrCancelled = errors.New("share cancelled")
	// ErrUnsupported means the target is not available here.
	ErrUnsupported = errors.New("sharing not supported")
	// ErrShareInProgress is returned while another share is still running.
	ErrShareInProgress = errors.New("a share is already in progress")
)

// Artifact formats.
const (
	FormatText   = "text"
	FormatESCPOS = "escpos"
)

// Artifact is one receipt ready to hand to a target.
type Artifact struct {
	Title    string
	Caption  string
	FileName string
	Format   string
	Text     string
	Slip     []byte
}

// Content returns the bytes a byte-oriented target should store.
func (a Artifact) Content() []byte {
	if a.Format == FormatESCPOS {
		return a.Slip
	}
	return []byte(a.Text + "\n")
}

// NewArtifact packages a rendered receipt. The slip is always built so any
// target can print it.
func NewArtifact(v receipt.View, text string, format string, slipWidth int) Artifact {
	if format != FormatESCPOS {
		format = FormatText
	}
	ext := ".txt"
	if format == FormatESCPOS {
		ext = ".bin"
	}

	return Artifact{
		Title:    "Receipt",
		Caption:  "Receipt for " + v.Date,
		FileName: "receipt-" + uuid.New().String() + ext,
		Format:   format,
		Text:     text,
		Slip:     receipt.Slip(v, slipWidth, true),
	}
}

// Sharer hands an artifact to one target.
type Sharer interface {
	Name() string
	Share(ctx context.Context, a Artifact) error
}

// ShareError is a failed share. Retryable failures may succeed on a later
// attempt.
type ShareError struct {
	Err       error
	Target    string
	Retryable bool
}

func (e *ShareError) Error() string {
	return fmt.Sprintf("share to %s failed: %v", e.Target, e.Err)
}

func (e *ShareError) Unwrap() error {
	return e.Err
}

func shareError(target string, err error, retryable bool) error {
	return &ShareError{Target: target, Err: err, Retryable: retryable}
}
