package export

import (
	"context"
	"io"
)

// WriterSharer writes the receipt to a stream such as stdout.
type WriterSharer struct {
	w    io.Writer
	name string
}

// NewWriterSharer writes artifacts to w.
func NewWriterSharer(w io.Writer) *WriterSharer {
	return &WriterSharer{w: w, name: "stdout"}
}

// Name implements Sharer.
func (s *WriterSharer) Name() string { return s.name }

// Share implements Sharer.
func (s *WriterSharer) Share(ctx context.Context, a Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.w.Write(a.Content()); err != nil {
		return shareError(s.Name(), err, false)
	}
	return nil
}
