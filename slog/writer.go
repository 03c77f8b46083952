package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/firedoc"
)

// Ensure LoggingDocumentWriter implements firedoc.DocumentWriter.
var _ firedoc.DocumentWriter = (*LoggingDocumentWriter)(nil)

// LoggingDocumentWriter wraps a DocumentWriter with logging.
type LoggingDocumentWriter struct {
	next   firedoc.DocumentWriter
	logger *slog.Logger
}

// NewLoggingDocumentWriter creates a new LoggingDocumentWriter.
func NewLoggingDocumentWriter(next firedoc.DocumentWriter, logger *slog.Logger) *LoggingDocumentWriter {
	return &LoggingDocumentWriter{next: next, logger: logger}
}

// WriteDocument delegates to the wrapped writer and logs the operation.
func (w *LoggingDocumentWriter) WriteDocument(ctx context.Context, path string, doc *firedoc.Document) (err error) {
	defer func(begin time.Time) {
		attrs := []any{"path", path, "blocks", doc.Len(), "duration", time.Since(begin)}
		if err != nil {
			w.logger.Error("write document failed", append(attrs, "err", err)...)
			return
		}
		w.logger.Debug("write document", attrs...)
	}(time.Now())
	return w.next.WriteDocument(ctx, path, doc)
}
