package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSharer saves receipts into a directory.
type FileSharer struct {
	dir string
}

// NewFileSharer creates a sharer writing into dir.
func NewFileSharer(dir string) *FileSharer {
	return &FileSharer{dir: dir}
}

// Name implements Sharer.
func (f *FileSharer) Name() string { return "file" }

// Path returns where an artifact is written.
func (f *FileSharer) Path(a Artifact) string {
	return filepath.Join(f.dir, a.FileName)
}

// Share implements Sharer.
func (f *FileSharer) Share(ctx context.Context, a Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.FileName == "" {
		return shareError(f.Name(), fmt.Errorf("artifact has no file name"), false)
	}

	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return shareError(f.Name(), fmt.Errorf("failed to create export directory: %w", err), false)
	}

	if err := os.WriteFile(f.Path(a), a.Content(), 0o600); err != nil {
		return shareError(f.Name(), fmt.Errorf("failed to write receipt: %w", err), false)
	}
	return nil
}
