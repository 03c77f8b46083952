package main

import (
	"fmt"

	"github.com/fwojciec/firedoc"
	"github.com/fwojciec/firedoc/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	cfg := commandConfig(deps)
	c.apply(cfg)
	if c.HTMLFallback {
		cfg.HTMLFallback = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Crawling %s (limit %d)\n", cfg.BaseURL, cfg.PageLimit)

	return runPipeline(deps, cfg, crawl.Request{
		Mode:         firedoc.ModeCrawl,
		BaseURL:      cfg.BaseURL,
		OutputPath:   cfg.OutputPath,
		PageLimit:    cfg.PageLimit,
		Watch:        c.Watch,
		HTMLFallback: cfg.HTMLFallback,
	})
}
