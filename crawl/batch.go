package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/firedoc"
)

// Outcome describes how batch polling ended.
type Outcome string

// Outcome constants. Stalled and TimedOut are partial successes: the
// job never reported completion but its available data is returned.
const (
	OutcomeCompleted Outcome = "completed"
	OutcomeStalled   Outcome = "stalled"
	OutcomeTimedOut  Outcome = "timed_out"
)

// BatchResult is the final snapshot of a batch extraction.
type BatchResult struct {
	Job     *firedoc.CrawlJob
	Outcome Outcome
	Elapsed time.Duration
}

// Partial reports whether polling stopped before the job completed.
func (r *BatchResult) Partial() bool {
	return r.Outcome != OutcomeCompleted
}

// BatchExtract submits urls for batch extraction and polls until the job
// completes, fails, stalls on its last page, or exceeds MaxWait.
//
// Termination, checked in order after every status poll:
//   - completed: return the job
//   - failed: return EVENDOR
//   - on the last page with no movement for StallTimeout: return the job
//   - MaxWait elapsed: return the job
//
// A failed status request aborts with its error; there are no retries.
func (c *Crawler) BatchExtract(ctx context.Context, urls []string, opts firedoc.ScrapeOptions) (*BatchResult, error) {
	if len(urls) == 0 {
		return nil, firedoc.Errorf(firedoc.EINVALID, "no URLs to extract")
	}

	clock := c.clock()
	log := c.logger()
	start := clock.Now()
	log.Info("starting batch extraction", "urls", len(urls))

	sub, err := c.Client.StartBatchScrape(ctx, urls, opts)
	if err != nil {
		return nil, err
	}
	if !sub.Success {
		log.Error("batch extraction failed to start", "err", sub.Error)
		return nil, firedoc.Errorf(firedoc.EVENDOR, "batch extraction failed to start: %s", sub.Error)
	}
	if len(sub.InvalidURLs) > 0 {
		log.Warn("service rejected URLs", "count", len(sub.InvalidURLs))
	}
	log.Info("batch job started", "id", sub.ID)

	lastProgress := start
	for {
		job, err := c.Client.BatchScrapeStatus(ctx, sub.ID)
		if err != nil {
			return nil, err
		}
		if job.ID == "" {
			job.ID = sub.ID
		}
		log.Info("batch progress", "completed", job.Completed, "total", job.Total)

		now := clock.Now()
		result := &BatchResult{Job: job, Elapsed: now.Sub(start)}

		switch job.Status {
		case firedoc.JobCompleted:
			result.Outcome = OutcomeCompleted
			log.Info("batch extraction completed",
				"pages", len(job.Pages),
				"credits", job.CreditsUsed,
				"duration", result.Elapsed,
			)
			return result, nil
		case firedoc.JobFailed:
			log.Error("batch extraction failed", "id", job.ID)
			return nil, firedoc.Errorf(firedoc.EVENDOR, "batch extraction %s failed", job.ID)
		}

		if job.OnLastPage() {
			if now.Sub(lastProgress) > c.stallTimeout() {
				log.Warn("extraction appears stuck on last page, continuing with available results",
					"completed", job.Completed, "total", job.Total)
				result.Outcome = OutcomeStalled
				return result, nil
			}
		} else {
			lastProgress = now
		}

		if now.Sub(start) > c.maxWait() {
			log.Warn("extraction exceeded maximum wait time, continuing with available results",
				"max_wait", c.maxWait())
			result.Outcome = OutcomeTimedOut
			return result, nil
		}

		if err := clock.Sleep(ctx, c.pollInterval()); err != nil {
			return nil, err
		}
	}
}

func (c *Crawler) pollInterval() time.Duration {
	if c.PollInterval <= 0 {
		return DefaultPollInterval
	}
	return c.PollInterval
}

func (c *Crawler) stallTimeout() time.Duration {
	if c.StallTimeout <= 0 {
		return DefaultStallTimeout
	}
	return c.StallTimeout
}

func (c *Crawler) maxWait() time.Duration {
	if c.MaxWait <= 0 {
		return DefaultMaxWait
	}
	return c.MaxWait
}
