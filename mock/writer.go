package mock

import (
	"context"

	"github.com/fwojciec/firedoc"
)

var _ firedoc.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of firedoc.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, path string, doc *firedoc.Document) error
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, path string, doc *firedoc.Document) error {
	return w.WriteDocumentFn(ctx, path, doc)
}
