package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/firedoc"
	"github.com/fwojciec/firedoc/crawl"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	cfg := commandConfig(deps)
	c.apply(cfg)
	if err := c.applyExtract(cfg); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	filter, err := firedoc.NewURLFilter(c.Include, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	source := crawl.Source(c.Source)
	if source == "" {
		source = crawl.SourceCrawl
	}
	fmt.Fprintf(deps.Stdout, "Extracting %s (limit %d, source %s)\n", cfg.BaseURL, cfg.PageLimit, source)

	return runPipeline(deps, cfg, crawl.Request{
		Mode:       firedoc.ModeExtract,
		BaseURL:    cfg.BaseURL,
		OutputPath: cfg.OutputPath,
		PageLimit:  cfg.PageLimit,
		Prompt:     cfg.PromptTemplate,
		Watch:      c.Watch,
		Source:     source,
		Filter:     filter,
	})
}

func (c *ExtractCmd) applyExtract(cfg *firedoc.Config) error {
	if c.PromptFile != "" {
		b, err := os.ReadFile(c.PromptFile)
		if err != nil {
			return firedoc.Errorf(firedoc.EIO, "cannot read prompt file %s: %v", c.PromptFile, err)
		}
		cfg.PromptTemplate = strings.TrimSpace(string(b))
	}
	if c.Prompt != "" {
		cfg.PromptTemplate = c.Prompt
	}
	if strings.TrimSpace(cfg.PromptTemplate) == "" {
		return firedoc.Errorf(firedoc.EINVALID, "extraction prompt must not be empty")
	}
	if c.PollInterval != 0 {
		cfg.PollInterval = c.PollInterval
	}
	if c.StallTimeout != 0 {
		cfg.StallTimeout = c.StallTimeout
	}
	if c.MaxWait != 0 {
		cfg.MaxWait = c.MaxWait
	}
	return nil
}
