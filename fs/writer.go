// Package fs writes generated documentation to the local filesystem.
package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/firedoc"
)

// Ensure Writer implements firedoc.DocumentWriter at compile time.
var _ firedoc.DocumentWriter = (*Writer)(nil)

// Writer writes documents as a single UTF-8 markdown file.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteDocument writes doc to path, replacing any existing file.
// Content is written to a sibling temp file and renamed into place.
// Returns EIO on any filesystem failure.
func (w *Writer) WriteDocument(ctx context.Context, path string, doc *firedoc.Document) error {
	if path == "" {
		return firedoc.Errorf(firedoc.EINVALID, "output path required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return firedoc.Errorf(firedoc.EIO, "error writing to file %s: %v", path, err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return firedoc.Errorf(firedoc.EIO, "error writing to file %s: %v", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(doc.String()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return firedoc.Errorf(firedoc.EIO, "error writing to file %s: %v", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return firedoc.Errorf(firedoc.EIO, "error writing to file %s: %v", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return firedoc.Errorf(firedoc.EIO, "error writing to file %s: %v", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return firedoc.Errorf(firedoc.EIO, "error writing to file %s: %v", path, err)
	}
	return nil
}
