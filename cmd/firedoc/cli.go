package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/firedoc"
	"github.com/fwojciec/firedoc/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Config is layered from defaults, the YAML file and the environment.
	// Commands apply their flags on top of a copy.
	Config *firedoc.Config

	Client    firedoc.Client
	Writer    firedoc.DocumentWriter
	Sitemaps  firedoc.SitemapService
	Runs      firedoc.RunService
	Tokens    firedoc.TokenCounter
	Extractor firedoc.Extractor
	Converter firedoc.Converter
	Titles    firedoc.TitleFinder

	// Clock drives batch polling. Nil uses the wall clock.
	Clock crawl.Clock
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" type:"path" help:"YAML config file (default: $FIREDOC_CONFIG)"`
	DB      string `type:"path" help:"Run history database (default: $FIREDOC_DB or ~/.firedoc/history.db)"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Crawl   CrawlCmd   `cmd:"" help:"Crawl a site as markdown and write one document"`
	Extract ExtractCmd `cmd:"" help:"Collect URLs, run LLM extraction, and write one document"`
	History HistoryCmd `cmd:"" help:"List recorded runs"`
}

// OutputFlags are shared by the crawl and extract commands. Zero values
// leave the configured setting in place.
type OutputFlags struct {
	URL    string `arg:"" optional:"" help:"Documentation site URL (default: base_url from config)"`
	Output string `short:"o" help:"Output file (default: technical_documentation.md)"`
	Limit  int    `short:"l" help:"Maximum pages to crawl (default: 100)"`
	Watch  bool   `short:"w" help:"Stream crawl progress over a websocket"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	OutputFlags

	HTMLFallback bool   `name:"html-fallback" help:"Request raw HTML and convert pages locally when markdown is missing"`
	Extractor    string `help:"Main-content extractor for the HTML fallback: trafilatura or readability"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	OutputFlags

	Prompt       string        `short:"p" help:"Extraction prompt (default: built-in documentation prompt)"`
	PromptFile   string        `name:"prompt-file" type:"existingfile" help:"Read the extraction prompt from a file"`
	Source       string        `enum:"crawl,sitemap" default:"crawl" help:"URL discovery: crawl or sitemap"`
	Include      []string      `short:"i" help:"Keep only URLs matching regex (repeatable)"`
	Exclude      []string      `short:"x" help:"Drop URLs matching regex (repeatable)"`
	PollInterval time.Duration `name:"poll-interval" help:"Delay between batch status checks (default: 5s)"`
	StallTimeout time.Duration `name:"stall-timeout" help:"Give up when stuck on the last page this long (default: 2m)"`
	MaxWait      time.Duration `name:"max-wait" help:"Give up on the batch after this long (default: 5m)"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL   string `arg:"" optional:"" help:"Only show runs for this site URL"`
	Mode  string `short:"m" help:"Only show runs of this mode (crawl or extract)"`
	Limit int    `short:"n" default:"20" help:"Maximum runs to show"`
}

// apply overlays the shared flags on cfg.
func (f *OutputFlags) apply(cfg *firedoc.Config) {
	if f.URL != "" {
		cfg.BaseURL = f.URL
	}
	if f.Output != "" {
		cfg.OutputPath = f.Output
	}
	if f.Limit != 0 {
		cfg.PageLimit = f.Limit
	}
}
