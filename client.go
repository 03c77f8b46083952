package firedoc

import "context"

// Format names a page representation the crawl service can return.
type Format string

// Format constants understood by the crawl service.
const (
	FormatMarkdown Format = "markdown"
	FormatLinks    Format = "links"
	FormatExtract  Format = "extract"
	FormatRawHTML  Format = "rawHtml"
)

// CrawlOptions configures a site crawl.
type CrawlOptions struct {
	Limit   int
	Formats []Format
}

// ScrapeOptions configures a batch scrape of a fixed URL list.
type ScrapeOptions struct {
	Formats []Format

	// Prompt drives LLM extraction when Formats contains FormatExtract.
	Prompt string
}

// CrawlResult is the outcome of a blocking crawl.
type CrawlResult struct {
	Success     bool
	ID          string
	Status      JobStatus
	CreditsUsed int
	Pages       []*Page
	Error       string
}

// BatchSubmission acknowledges an asynchronous batch scrape.
type BatchSubmission struct {
	Success     bool
	ID          string
	InvalidURLs []string
	Error       string
}

// CrawlEventType identifies an event emitted while watching a crawl.
type CrawlEventType string

// CrawlEventType constants.
const (
	CrawlEventPage      CrawlEventType = "crawl.page"
	CrawlEventCompleted CrawlEventType = "crawl.completed"
	CrawlEventFailed    CrawlEventType = "crawl.failed"
)

// CrawlEvent reports progress while watching a crawl.
type CrawlEvent struct {
	Type        CrawlEventType
	Pages       []*Page
	CreditsUsed int
	Error       string
}

// CrawlEventFunc is called for every event received while watching a crawl.
type CrawlEventFunc func(CrawlEvent)

// Client is the boundary to the hosted crawl and extraction service.
// Implementations translate transport failures into EVENDOR errors; a
// response the vendor marks unsuccessful is returned as a value with
// Success set to false.
type Client interface {
	// Crawl submits a crawl and blocks until the vendor reports a
	// terminal status, returning every page collected.
	Crawl(ctx context.Context, url string, opts CrawlOptions) (*CrawlResult, error)

	// WatchCrawl submits a crawl and streams its events to fn until the
	// crawl completes, fails, or ctx is canceled.
	WatchCrawl(ctx context.Context, url string, opts CrawlOptions, fn CrawlEventFunc) error

	// StartBatchScrape submits an asynchronous scrape of urls.
	StartBatchScrape(ctx context.Context, urls []string, opts ScrapeOptions) (*BatchSubmission, error)

	// BatchScrapeStatus returns the current snapshot of a batch job.
	BatchScrapeStatus(ctx context.Context, id string) (*CrawlJob, error)
}
