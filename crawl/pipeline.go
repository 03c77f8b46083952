package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/firedoc"
)

// recordTimeout bounds the history write after a run ends.
const recordTimeout = 5 * time.Second

// Source selects where the extract workflow finds its URLs.
type Source string

// Source constants.
const (
	SourceCrawl   Source = "crawl"
	SourceSitemap Source = "sitemap"
)

// Request describes one pipeline run.
type Request struct {
	Mode       firedoc.Mode
	BaseURL    string
	OutputPath string
	PageLimit  int

	// Prompt drives LLM extraction in extract mode.
	Prompt string

	// Watch streams crawl events instead of waiting for the whole crawl.
	Watch bool

	// Source picks URL discovery in extract mode. Defaults to SourceCrawl.
	Source Source

	// Filter narrows discovered URLs in extract mode.
	Filter *firedoc.URLFilter

	// HTMLFallback requests raw HTML alongside markdown in crawl mode.
	HTMLFallback bool
}

// Report summarizes a finished run.
type Report struct {
	Run     *firedoc.Run
	Bytes   int
	Tokens  int
	Partial bool
	Elapsed time.Duration
}

// Pipeline runs crawl → collect → extract → format → write.
type Pipeline struct {
	Crawler   *Crawler
	Formatter *Formatter
	Writer    firedoc.DocumentWriter

	// Optional collaborators.
	Sitemaps firedoc.SitemapService
	Tokens   firedoc.TokenCounter
	Runs     firedoc.RunService

	Logger *slog.Logger
}

// Run executes req and always returns a report; the error is non-nil
// whenever the run ends in a failure state. Nothing is written on failure.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Report, error) {
	clock := p.Crawler.clock()
	run := &firedoc.Run{
		Mode:       req.Mode,
		BaseURL:    req.BaseURL,
		OutputPath: req.OutputPath,
		State:      firedoc.StateInit,
		StartedAt:  clock.Now(),
	}
	report := &Report{Run: run}

	err := run.Validate()
	if err == nil {
		err = p.run(ctx, req, report)
	}

	run.FinishedAt = clock.Now()
	report.Elapsed = run.FinishedAt.Sub(run.StartedAt)
	p.record(ctx, run)

	if err != nil {
		p.logger().Error("run failed", "state", run.State, "err", firedoc.ErrorMessage(err))
		return report, err
	}
	p.logger().Info("run finished",
		"pages", run.Pages,
		"credits", run.CreditsUsed,
		"duration", report.Elapsed,
	)
	return report, nil
}

func (p *Pipeline) run(ctx context.Context, req Request, report *Report) error {
	run := report.Run

	var pages []*firedoc.Page
	var err error
	switch req.Mode {
	case firedoc.ModeCrawl:
		pages, err = p.crawlPages(ctx, req, run)
	case firedoc.ModeExtract:
		pages, err = p.extractPages(ctx, req, report)
	}
	if err != nil {
		return err
	}

	p.transition(run, firedoc.StateFormatting)
	doc, skipped := p.formatter().Format(pages)
	run.Skipped = skipped
	if doc.Len() == 0 {
		p.transition(run, firedoc.StateNoContent)
		return firedoc.Errorf(firedoc.ENOCONTENT, "no content was processed from %d pages", len(pages))
	}

	p.transition(run, firedoc.StateWriting)
	if err := p.Writer.WriteDocument(ctx, req.OutputPath, doc); err != nil {
		p.transition(run, firedoc.StateWriteFailed)
		return err
	}

	content := doc.String()
	run.Pages = doc.Len()
	run.ContentHash = ComputeHash(content)
	report.Bytes = len(content)
	if p.Tokens != nil {
		tokens, err := p.Tokens.CountTokens(ctx, content)
		if err != nil {
			p.logger().Warn("token count failed", "err", err)
		} else {
			report.Tokens = tokens
		}
	}
	p.logger().Info("documentation saved", "path", req.OutputPath, "pages", run.Pages, "skipped", skipped)

	p.transition(run, firedoc.StateDone)
	return nil
}

// crawlPages crawls the site as markdown; the pages are the output.
func (p *Pipeline) crawlPages(ctx context.Context, req Request, run *firedoc.Run) ([]*firedoc.Page, error) {
	p.transition(run, firedoc.StateCrawling)

	opts := firedoc.CrawlOptions{
		Limit:   req.PageLimit,
		Formats: []firedoc.Format{firedoc.FormatMarkdown},
	}
	if req.HTMLFallback {
		opts.Formats = append(opts.Formats, firedoc.FormatRawHTML)
	}

	result, err := p.crawl(ctx, req, opts)
	if err != nil {
		p.transition(run, firedoc.StateCrawlFailed)
		return nil, err
	}
	run.JobID = result.ID
	run.CreditsUsed += result.CreditsUsed
	run.URLs = len(result.Pages)

	if len(result.Pages) == 0 {
		p.transition(run, firedoc.StateNoContent)
		return nil, firedoc.Errorf(firedoc.ENOCONTENT, "no data found in crawl response")
	}
	p.transition(run, firedoc.StateURLsCollected)
	return result.Pages, nil
}

// extractPages collects URLs and runs batch extraction over them.
func (p *Pipeline) extractPages(ctx context.Context, req Request, report *Report) ([]*firedoc.Page, error) {
	run := report.Run
	p.transition(run, firedoc.StateCrawling)

	urls, err := p.collectURLs(ctx, req, run)
	if err != nil {
		p.transition(run, firedoc.StateCrawlFailed)
		return nil, err
	}
	run.URLs = len(urls)
	if len(urls) == 0 {
		p.transition(run, firedoc.StateNoURLs)
		return nil, firedoc.Errorf(firedoc.ENOTFOUND, "no URLs found under %s", req.BaseURL)
	}
	p.transition(run, firedoc.StateURLsCollected)
	p.logger().Info("found pages to process", "count", len(urls))

	p.transition(run, firedoc.StateExtracting)
	result, err := p.Crawler.BatchExtract(ctx, urls, firedoc.ScrapeOptions{
		Formats: []firedoc.Format{firedoc.FormatExtract},
		Prompt:  req.Prompt,
	})
	if err != nil {
		p.transition(run, firedoc.StateExtractFailed)
		return nil, err
	}
	run.JobID = result.Job.ID
	run.CreditsUsed += result.Job.CreditsUsed
	report.Partial = result.Partial()
	run.Partial = report.Partial
	if report.Partial {
		p.transition(run, firedoc.StateExtractPartial)
	} else {
		p.transition(run, firedoc.StateExtractDone)
	}
	return result.Job.Pages, nil
}

func (p *Pipeline) collectURLs(ctx context.Context, req Request, run *firedoc.Run) ([]string, error) {
	if req.Source == SourceSitemap {
		if p.Sitemaps == nil {
			return nil, firedoc.Errorf(firedoc.EINVALID, "sitemap discovery not configured")
		}
		urls, err := p.Sitemaps.DiscoverURLs(ctx, req.BaseURL, req.Filter)
		if err != nil {
			return nil, err
		}
		if req.PageLimit > 0 && len(urls) > req.PageLimit {
			urls = urls[:req.PageLimit]
		}
		return urls, nil
	}

	result, err := p.crawl(ctx, req, firedoc.CrawlOptions{
		Limit:   req.PageLimit,
		Formats: []firedoc.Format{firedoc.FormatLinks},
	})
	if err != nil {
		return nil, err
	}
	run.CreditsUsed += result.CreditsUsed
	return req.Filter.Apply(CollectURLs(result.Pages)), nil
}

func (p *Pipeline) crawl(ctx context.Context, req Request, opts firedoc.CrawlOptions) (*firedoc.CrawlResult, error) {
	if req.Watch {
		return p.Crawler.WatchSite(ctx, req.BaseURL, opts)
	}
	return p.Crawler.CrawlSite(ctx, req.BaseURL, opts)
}

func (p *Pipeline) transition(run *firedoc.Run, state firedoc.RunState) {
	run.State = state
	p.logger().Debug("pipeline state", "state", state)
}

// record stores run even when ctx was canceled, so interrupted runs still
// show up in history.
func (p *Pipeline) record(ctx context.Context, run *firedoc.Run) {
	if p.Runs == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := p.Runs.CreateRun(ctx, run); err != nil {
		p.logger().Warn("failed to record run", "err", err)
	}
}

func (p *Pipeline) formatter() *Formatter {
	if p.Formatter == nil {
		return &Formatter{Logger: p.Logger}
	}
	return p.Formatter
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}
