package firedoc

import (
	"context"
	"time"
)

// Mode selects which workflow a run executes.
type Mode string

// Mode constants.
const (
	// ModeCrawl crawls the site as markdown and formats pages directly.
	ModeCrawl Mode = "crawl"

	// ModeExtract collects URLs, then runs batch LLM extraction over them.
	ModeExtract Mode = "extract"
)

// RunState is a step of the crawl and extract pipeline.
type RunState string

// RunState constants. States ending in "_failed" plus NO_URLS and
// NO_CONTENT are terminal failures.
const (
	StateInit           RunState = "init"
	StateCrawling       RunState = "crawling"
	StateCrawlFailed    RunState = "crawl_failed"
	StateURLsCollected  RunState = "urls_collected"
	StateNoURLs         RunState = "no_urls"
	StateExtracting     RunState = "extracting"
	StateExtractFailed  RunState = "extract_failed"
	StateExtractDone    RunState = "extract_done"
	StateExtractPartial RunState = "extract_partial"
	StateFormatting     RunState = "formatting"
	StateNoContent      RunState = "no_content"
	StateWriting        RunState = "writing"
	StateWriteFailed    RunState = "write_failed"
	StateDone           RunState = "done"
)

// IsFailure reports whether the state is a terminal failure.
func (s RunState) IsFailure() bool {
	switch s {
	case StateCrawlFailed, StateNoURLs, StateExtractFailed, StateNoContent, StateWriteFailed:
		return true
	}
	return false
}

// Run records one execution of the pipeline.
type Run struct {
	ID          string    `json:"id"`
	Mode        Mode      `json:"mode"`
	BaseURL     string    `json:"baseUrl"`
	JobID       string    `json:"jobId"`
	State       RunState  `json:"state"`
	URLs        int       `json:"urls"`
	Pages       int       `json:"pages"`
	Skipped     int       `json:"skipped"`
	CreditsUsed int       `json:"creditsUsed"`
	Partial     bool      `json:"partial"` // extraction stopped before the batch completed
	OutputPath  string    `json:"outputPath"`
	ContentHash string    `json:"contentHash"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Mode != ModeCrawl && r.Mode != ModeExtract {
		return Errorf(EINVALID, "run mode %q invalid", r.Mode)
	}
	if r.BaseURL == "" {
		return Errorf(EINVALID, "run base URL required")
	}
	return nil
}

// RunService persists run history.
type RunService interface {
	// CreateRun records a new run and assigns its ID.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Mode    *Mode   `json:"mode"`
	BaseURL *string `json:"baseUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
