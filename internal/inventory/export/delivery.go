package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Delivery materializes a finished document. It is called once per export;
// a returned error means the document was not delivered.
type Delivery interface {
	Deliver(ctx context.Context, doc *Document) error
}

// DeliveryFunc adapts a function to Delivery
type DeliveryFunc func(ctx context.Context, doc *Document) error

// Deliver calls f
func (f DeliveryFunc) Deliver(ctx context.Context, doc *Document) error {
	return f(ctx, doc)
}

// FileDelivery writes documents into a directory
type FileDelivery struct {
	Dir string
}

// NewFileDelivery creates a file delivery rooted at dir
func NewFileDelivery(dir string) *FileDelivery {
	return &FileDelivery{Dir: dir}
}

// Path returns where doc is written
func (d *FileDelivery) Path(doc *Document) string {
	return filepath.Join(d.Dir, filepath.Base(doc.Filename))
}

// Deliver writes doc through a temp file and rename, so a partial file is never visible
func (d *FileDelivery) Deliver(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	tmp, err := os.CreateTemp(d.Dir, ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(doc.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", doc.Filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", doc.Filename, err)
	}

	if err := os.Rename(tmpName, d.Path(doc)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", doc.Filename, err)
	}

	return nil
}
