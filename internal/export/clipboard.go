package export

import (
	"context"

	"github.com/atotto/clipboard"
)

// ClipboardSharer copies the receipt text to the system clipboard.
type ClipboardSharer struct {
	write       func(string) error
	unsupported bool
}

// NewClipboardSharer uses the system clipboard.
func NewClipboardSharer() *ClipboardSharer {
	return &ClipboardSharer{
		write:       clipboard.WriteAll,
		unsupported: clipboard.Unsupported,
	}
}

// Name implements Sharer.
func (c *ClipboardSharer) Name() string { return "clipboard" }

// Share implements Sharer.
func (c *ClipboardSharer) Share(ctx context.Context, a Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.unsupported {
		return shareError(c.Name(), ErrUnsupported, false)
	}

	// The clipboard helpers shell out to xclip and friends, which fail
	// transiently when the display is busy.
	if err := c.write(a.Caption + "\n\n" + a.Text); err != nil {
		return shareError(c.Name(), err, true)
	}
	return nil
}
