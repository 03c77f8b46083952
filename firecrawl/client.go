// Package firecrawl implements firedoc.Client against the Firecrawl v1 API.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/firedoc"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the hosted API endpoint.
const DefaultBaseURL = firedoc.DefaultAPIURL

// DefaultRequestTimeout bounds a single HTTP request.
const DefaultRequestTimeout = 60 * time.Second

// DefaultRateLimit is the maximum number of API requests per second.
const DefaultRateLimit = 5.0

// DefaultCrawlPollInterval is the delay between status checks in Crawl.
const DefaultCrawlPollInterval = 2 * time.Second

// Ensure Client implements firedoc.Client at compile time.
var _ firedoc.Client = (*Client)(nil)

// Client talks to the Firecrawl REST and websocket endpoints.
type Client struct {
	apiKey            string
	baseURL           string
	httpClient        *http.Client
	limiter           *rate.Limiter
	crawlPollInterval time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient replaces the HTTP client used for REST calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit caps API requests per second. Zero disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithCrawlPollInterval sets the delay between status checks in Crawl.
func WithCrawlPollInterval(d time.Duration) Option {
	return func(c *Client) {
		c.crawlPollInterval = d
	}
}

// NewClient creates a new Client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:            apiKey,
		baseURL:           DefaultBaseURL,
		httpClient:        &http.Client{Timeout: DefaultRequestTimeout},
		limiter:           rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		crawlPollInterval: DefaultCrawlPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Crawl submits a crawl and polls its status until it is terminal.
func (c *Client) Crawl(ctx context.Context, siteURL string, opts firedoc.CrawlOptions) (*firedoc.CrawlResult, error) {
	sub, err := c.startCrawl(ctx, siteURL, opts)
	if err != nil {
		return nil, err
	}
	if !sub.Success {
		return &firedoc.CrawlResult{Success: false, Error: sub.Error}, nil
	}

	for {
		status, err := c.status(ctx, "/v1/crawl/"+url.PathEscape(sub.ID))
		if err != nil {
			return nil, err
		}

		job := toJob(sub.ID, status)
		if job.Status.IsTerminal() {
			return &firedoc.CrawlResult{
				Success:     job.Status == firedoc.JobCompleted,
				ID:          sub.ID,
				Status:      job.Status,
				CreditsUsed: job.CreditsUsed,
				Pages:       job.Pages,
				Error:       status.Error,
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.crawlPollInterval):
		}
	}
}

// StartBatchScrape submits an asynchronous batch scrape.
func (c *Client) StartBatchScrape(ctx context.Context, urls []string, opts firedoc.ScrapeOptions) (*firedoc.BatchSubmission, error) {
	req := batchScrapeRequest{
		URLs:    urls,
		Formats: formatNames(opts.Formats),
	}
	if opts.Prompt != "" {
		req.Extract = &extractOptions{Prompt: opts.Prompt}
	}

	var resp submitResponse
	if err := c.submit(ctx, "/v1/batch/scrape", req, &resp); err != nil {
		return nil, err
	}

	return &firedoc.BatchSubmission{
		Success:     resp.Success,
		ID:          resp.ID,
		InvalidURLs: resp.InvalidURLs,
		Error:       resp.Error,
	}, nil
}

// BatchScrapeStatus returns the current state of a batch scrape.
func (c *Client) BatchScrapeStatus(ctx context.Context, id string) (*firedoc.CrawlJob, error) {
	if id == "" {
		return nil, firedoc.Errorf(firedoc.EINVALID, "batch job ID required")
	}
	status, err := c.status(ctx, "/v1/batch/scrape/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return toJob(id, status), nil
}

func (c *Client) startCrawl(ctx context.Context, siteURL string, opts firedoc.CrawlOptions) (*submitResponse, error) {
	if siteURL == "" {
		return nil, firedoc.Errorf(firedoc.EINVALID, "crawl URL required")
	}
	req := crawlRequest{
		URL:   siteURL,
		Limit: opts.Limit,
		ScrapeOptions: scrapeOptions{
			Formats: formatNames(opts.Formats),
		},
	}
	var resp submitResponse
	if err := c.submit(ctx, "/v1/crawl", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// status fetches a job status and follows pagination once the job is
// terminal, so the returned data holds every page.
func (c *Client) status(ctx context.Context, path string) (*statusResponse, error) {
	var resp statusResponse
	if err := c.get(ctx, c.baseURL+path, &resp); err != nil {
		return nil, err
	}
	if !firedoc.ParseJobStatus(resp.Status).IsTerminal() {
		return &resp, nil
	}

	seen := map[string]bool{}
	next := resp.Next
	for next != "" && !seen[next] {
		seen[next] = true
		var page statusResponse
		if err := c.get(ctx, next, &page); err != nil {
			return nil, err
		}
		resp.Data = append(resp.Data, page.Data...)
		next = page.Next
	}
	resp.Next = ""
	return &resp, nil
}

// submit POSTs body and decodes the reply into out. A non-2xx reply that
// still decodes is returned without error so callers can read the
// vendor's success flag and message.
func (c *Client) submit(ctx context.Context, path string, body any, out *submitResponse) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	status, data, err := c.do(ctx, http.MethodPost, c.baseURL+path, payload)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		if status/100 != 2 {
			return firedoc.Errorf(firedoc.EVENDOR, "POST %s: HTTP %d", path, status)
		}
		return firedoc.Errorf(firedoc.EVENDOR, "POST %s: decoding response: %v", path, err)
	}
	if status/100 != 2 {
		out.Success = false
		if out.Error == "" {
			out.Error = fmt.Sprintf("HTTP %d", status)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, target string, out *statusResponse) error {
	status, data, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	if status/100 != 2 {
		var e statusResponse
		_ = json.Unmarshal(data, &e)
		if e.Error != "" {
			return firedoc.Errorf(firedoc.EVENDOR, "GET %s: HTTP %d: %s", target, status, e.Error)
		}
		return firedoc.Errorf(firedoc.EVENDOR, "GET %s: HTTP %d", target, status)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return firedoc.Errorf(firedoc.EVENDOR, "GET %s: decoding response: %v", target, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, target string, payload []byte) (int, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, err
		}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, ctx.Err()
		}
		return 0, nil, firedoc.Errorf(firedoc.EVENDOR, "%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, firedoc.Errorf(firedoc.EVENDOR, "%s %s: reading response: %v", method, target, err)
	}
	return resp.StatusCode, data, nil
}

func toJob(id string, s *statusResponse) *firedoc.CrawlJob {
	return &firedoc.CrawlJob{
		ID:          id,
		Status:      firedoc.ParseJobStatus(s.Status),
		Completed:   s.Completed,
		Total:       s.Total,
		CreditsUsed: s.CreditsUsed,
		Pages:       toPages(s.Data),
	}
}
