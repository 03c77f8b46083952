// Package slog decorates firedoc services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/firedoc"
)

// Ensure LoggingClient implements firedoc.Client.
var _ firedoc.Client = (*LoggingClient)(nil)

// LoggingClient wraps a crawl service client with debug logging of every
// request and its outcome.
type LoggingClient struct {
	next   firedoc.Client
	logger *slog.Logger
}

// NewLoggingClient creates a new LoggingClient.
func NewLoggingClient(next firedoc.Client, logger *slog.Logger) *LoggingClient {
	return &LoggingClient{next: next, logger: logger}
}

// Crawl delegates to the wrapped client and logs the result.
func (c *LoggingClient) Crawl(ctx context.Context, url string, opts firedoc.CrawlOptions) (result *firedoc.CrawlResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "limit", opts.Limit, "duration", time.Since(begin)}
		if result != nil {
			attrs = append(attrs,
				"id", result.ID,
				"success", result.Success,
				"pages", len(result.Pages),
				"credits", result.CreditsUsed,
			)
		}
		c.log(err, "crawl", attrs)
	}(time.Now())
	return c.next.Crawl(ctx, url, opts)
}

// WatchCrawl delegates to the wrapped client, logging each event.
func (c *LoggingClient) WatchCrawl(ctx context.Context, url string, opts firedoc.CrawlOptions, fn firedoc.CrawlEventFunc) (err error) {
	events := 0
	defer func(begin time.Time) {
		c.log(err, "watch crawl", []any{"url", url, "events", events, "duration", time.Since(begin)})
	}(time.Now())
	return c.next.WatchCrawl(ctx, url, opts, func(e firedoc.CrawlEvent) {
		events++
		c.logger.Debug("crawl event", "type", e.Type, "pages", len(e.Pages), "err", e.Error)
		fn(e)
	})
}

// StartBatchScrape delegates to the wrapped client and logs the submission.
func (c *LoggingClient) StartBatchScrape(ctx context.Context, urls []string, opts firedoc.ScrapeOptions) (sub *firedoc.BatchSubmission, err error) {
	defer func(begin time.Time) {
		attrs := []any{"urls", len(urls), "formats", opts.Formats, "duration", time.Since(begin)}
		if sub != nil {
			attrs = append(attrs, "id", sub.ID, "success", sub.Success, "invalid", len(sub.InvalidURLs))
		}
		c.log(err, "start batch scrape", attrs)
	}(time.Now())
	return c.next.StartBatchScrape(ctx, urls, opts)
}

// BatchScrapeStatus delegates to the wrapped client and logs the snapshot.
func (c *LoggingClient) BatchScrapeStatus(ctx context.Context, id string) (job *firedoc.CrawlJob, err error) {
	defer func(begin time.Time) {
		attrs := []any{"id", id, "duration", time.Since(begin)}
		if job != nil {
			attrs = append(attrs,
				"status", job.Status,
				"completed", job.Completed,
				"total", job.Total,
				"pages", len(job.Pages),
			)
		}
		c.log(err, "batch scrape status", attrs)
	}(time.Now())
	return c.next.BatchScrapeStatus(ctx, id)
}

func (c *LoggingClient) log(err error, msg string, attrs []any) {
	if err != nil {
		c.logger.Debug(msg+" failed", append(attrs, "err", err)...)
		return
	}
	c.logger.Debug(msg, attrs...)
}
