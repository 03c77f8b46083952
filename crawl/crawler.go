// Package crawl drives the crawl service: site crawls, batch extraction
// with bounded polling, page formatting, and the end-to-end pipeline.
package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/firedoc"
)

// Default polling bounds for batch extraction.
const (
	DefaultPollInterval = 5 * time.Second
	DefaultStallTimeout = 120 * time.Second
	DefaultMaxWait      = 300 * time.Second
)

// Crawler wraps a firedoc.Client with the crawl and extraction policy.
type Crawler struct {
	Client firedoc.Client
	Clock  Clock
	Logger *slog.Logger

	// PollInterval is the delay between batch status checks.
	PollInterval time.Duration

	// StallTimeout ends polling early when a batch sits on its last
	// page for longer than this.
	StallTimeout time.Duration

	// MaxWait ends polling early once exceeded.
	MaxWait time.Duration
}

// NewCrawler returns a Crawler with default polling bounds.
func NewCrawler(client firedoc.Client, logger *slog.Logger) *Crawler {
	return &Crawler{
		Client:       client,
		Clock:        SystemClock{},
		Logger:       logger,
		PollInterval: DefaultPollInterval,
		StallTimeout: DefaultStallTimeout,
		MaxWait:      DefaultMaxWait,
	}
}

// CrawlSite runs a blocking crawl of baseURL.
// Returns EVENDOR if the service does not report success.
func (c *Crawler) CrawlSite(ctx context.Context, baseURL string, opts firedoc.CrawlOptions) (*firedoc.CrawlResult, error) {
	start := c.clock().Now()
	c.logger().Info("starting crawl", "url", baseURL, "limit", opts.Limit, "formats", opts.Formats)

	result, err := c.Client.Crawl(ctx, baseURL, opts)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = "service reported failure"
		}
		return nil, firedoc.Errorf(firedoc.EVENDOR, "crawl of %s failed: %s", baseURL, msg)
	}

	c.logger().Info("crawl finished",
		"pages", len(result.Pages),
		"credits", result.CreditsUsed,
		"duration", c.clock().Now().Sub(start),
	)
	return result, nil
}

// WatchSite crawls baseURL while consuming the live event stream,
// accumulating pages and credits as they arrive.
// Returns EVENDOR if the crawl fails.
func (c *Crawler) WatchSite(ctx context.Context, baseURL string, opts firedoc.CrawlOptions) (*firedoc.CrawlResult, error) {
	start := c.clock().Now()
	c.logger().Info("starting watched crawl", "url", baseURL, "limit", opts.Limit)

	result := &firedoc.CrawlResult{Status: firedoc.JobRunning}
	var failure string
	failed := false

	err := c.Client.WatchCrawl(ctx, baseURL, opts, func(e firedoc.CrawlEvent) {
		switch e.Type {
		case firedoc.CrawlEventPage:
			if len(e.Pages) == 0 {
				return
			}
			result.Pages = append(result.Pages, e.Pages...)
			result.CreditsUsed += e.CreditsUsed
			c.logger().Info("received pages", "total", len(result.Pages), "credits", result.CreditsUsed)
		case firedoc.CrawlEventCompleted:
			result.Status = firedoc.JobCompleted
			c.logger().Info("crawl completed")
		case firedoc.CrawlEventFailed:
			failed = true
			failure = e.Error
		}
	})
	if err != nil {
		return nil, err
	}
	if failed {
		c.logger().Error("crawl failed", "url", baseURL, "err", failure)
		return nil, firedoc.Errorf(firedoc.EVENDOR, "crawl of %s failed: %s", baseURL, failure)
	}

	result.Success = true
	c.logger().Info("crawl finished",
		"pages", len(result.Pages),
		"credits", result.CreditsUsed,
		"duration", c.clock().Now().Sub(start),
	)
	return result, nil
}

// CollectURLs returns each page's source URL in crawl order.
// Pages without a URL are dropped.
func CollectURLs(pages []*firedoc.Page) []string {
	urls := make([]string, 0, len(pages))
	for _, p := range pages {
		if p.URL != "" {
			urls = append(urls, p.URL)
		}
	}
	return urls
}

func (c *Crawler) clock() Clock {
	if c.Clock == nil {
		return SystemClock{}
	}
	return c.Clock
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
