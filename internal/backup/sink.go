package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Sink receives exported files.
type Sink interface {
	WriteFile(ctx context.Context, name string, data []byte) error
}

// DirSink writes exported files into a local directory.
type DirSink struct {
	Dir string
}

func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

func (d *DirSink) WriteFile(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %q: %w", d.Dir, err)
	}
	path := filepath.Join(d.Dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}
