package main

import (
	"fmt"

	"github.com/fwojciec/firedoc"
	"github.com/fwojciec/firedoc/crawl"
)

// runPipeline executes req against the configured services and prints the
// summary. cfg must already carry the command's flags.
func runPipeline(deps *Dependencies, cfg *firedoc.Config, req crawl.Request) error {
	crawler := crawl.NewCrawler(deps.Client, deps.Logger)
	crawler.PollInterval = cfg.PollInterval
	crawler.StallTimeout = cfg.StallTimeout
	crawler.MaxWait = cfg.MaxWait
	if deps.Clock != nil {
		crawler.Clock = deps.Clock
	}

	formatter := &crawl.Formatter{
		Titles: deps.Titles,
		Logger: deps.Logger,
	}
	if req.HTMLFallback {
		formatter.Extractor = deps.Extractor
		formatter.Converter = deps.Converter
	}

	p := &crawl.Pipeline{
		Crawler:   crawler,
		Formatter: formatter,
		Writer:    deps.Writer,
		Sitemaps:  deps.Sitemaps,
		Tokens:    deps.Tokens,
		Runs:      deps.Runs,
		Logger:    deps.Logger,
	}

	report, err := p.Run(deps.Ctx, req)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	if report.Partial {
		fmt.Fprintf(deps.Stderr, "warning: extraction did not finish; saved partial results\n")
	}
	fmt.Fprintf(deps.Stdout, "Saved %d pages to %s (%s, %s)\n",
		report.Run.Pages, req.OutputPath, crawl.FormatBytes(report.Bytes), crawl.FormatTokens(report.Tokens))
	if report.Run.Skipped > 0 {
		fmt.Fprintf(deps.Stdout, "  Skipped %d pages without content\n", report.Run.Skipped)
	}
	fmt.Fprintf(deps.Stdout, "  Credits used: %d\n", report.Run.CreditsUsed)
	fmt.Fprintf(deps.Stdout, "  Elapsed: %s\n", crawl.FormatElapsed(report.Elapsed))
	return nil
}

// commandConfig returns a copy of the shared config, so flags never leak
// between commands.
func commandConfig(deps *Dependencies) *firedoc.Config {
	if deps.Config == nil {
		return firedoc.DefaultConfig()
	}
	cfg := *deps.Config
	return &cfg
}
