package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/firedoc"
)

// Ensure LoggingSitemapService implements firedoc.SitemapService.
var _ firedoc.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging.
type LoggingSitemapService struct {
	next   firedoc.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next firedoc.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *firedoc.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", baseURL, "count", len(urls), "duration", time.Since(begin)}
		if err != nil {
			s.logger.Error("sitemap discovery failed", append(attrs, "err", err)...)
			return
		}
		s.logger.Info("sitemap discovery", attrs...)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
