package mock

import (
	"context"

	"github.com/fwojciec/firedoc"
)

var _ firedoc.Client = (*Client)(nil)

// Client is a mock implementation of firedoc.Client.
type Client struct {
	CrawlFn             func(ctx context.Context, url string, opts firedoc.CrawlOptions) (*firedoc.CrawlResult, error)
	WatchCrawlFn        func(ctx context.Context, url string, opts firedoc.CrawlOptions, fn firedoc.CrawlEventFunc) error
	StartBatchScrapeFn  func(ctx context.Context, urls []string, opts firedoc.ScrapeOptions) (*firedoc.BatchSubmission, error)
	BatchScrapeStatusFn func(ctx context.Context, id string) (*firedoc.CrawlJob, error)
}

func (c *Client) Crawl(ctx context.Context, url string, opts firedoc.CrawlOptions) (*firedoc.CrawlResult, error) {
	return c.CrawlFn(ctx, url, opts)
}

func (c *Client) WatchCrawl(ctx context.Context, url string, opts firedoc.CrawlOptions, fn firedoc.CrawlEventFunc) error {
	return c.WatchCrawlFn(ctx, url, opts, fn)
}

func (c *Client) StartBatchScrape(ctx context.Context, urls []string, opts firedoc.ScrapeOptions) (*firedoc.BatchSubmission, error) {
	return c.StartBatchScrapeFn(ctx, urls, opts)
}

func (c *Client) BatchScrapeStatus(ctx context.Context, id string) (*firedoc.CrawlJob, error) {
	return c.BatchScrapeStatusFn(ctx, id)
}
