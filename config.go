package firedoc

import (
	"strconv"
	"time"
)

// DefaultAPIURL is the hosted Firecrawl endpoint.
const DefaultAPIURL = "https://api.firecrawl.dev"

// DefaultPromptTemplate asks the extraction model for readable markdown.
const DefaultPromptTemplate = `Convert this technical documentation into clear, readable markdown.

Key Instructions:
1. Transform any JSON/dictionary data into natural language paragraphs
2. Keep code examples in proper markdown code blocks
3. Preserve important technical details but present them in a readable way
4. Use proper markdown headings (##) to organize content
5. Convert arrays/lists into proper markdown bullet points

For example, instead of:
{'title': 'API Docs', 'parameters': [{'name': 'url', 'required': true}]}

Write:
## API Documentation

This endpoint accepts the following parameters:
- url (required): The URL to process

Keep the content technical but make it human-readable.`

// Main-content extractors available to the HTML fallback.
const (
	ExtractorTrafilatura = "trafilatura"
	ExtractorReadability = "readability"
)

// Environment variables recognized by ApplyEnv.
const (
	EnvAPIKey         = "FIRECRAWL_API_KEY"
	EnvAPIURL         = "FIRECRAWL_API_URL"
	EnvBaseURL        = "FIREDOC_BASE_URL"
	EnvOutputPath     = "FIREDOC_OUTPUT_PATH"
	EnvPageLimit      = "FIREDOC_PAGE_LIMIT"
	EnvPromptTemplate = "FIREDOC_PROMPT_TEMPLATE"
)

// Config holds everything a run needs. It is assembled once at process
// start from defaults, an optional YAML file, the environment, and flags.
type Config struct {
	APIKey         string `yaml:"api_key"`
	APIURL         string `yaml:"api_url"`
	BaseURL        string `yaml:"base_url"`
	OutputPath     string `yaml:"output_path"`
	PageLimit      int    `yaml:"page_limit"`
	PromptTemplate string `yaml:"prompt_template"`

	// PollInterval is the delay between batch status checks.
	PollInterval time.Duration `yaml:"poll_interval"`

	// StallTimeout bounds how long a batch may sit on its last page.
	StallTimeout time.Duration `yaml:"stall_timeout"`

	// MaxWait bounds the whole batch wait.
	MaxWait time.Duration `yaml:"max_wait"`

	// CrawlPollInterval is the delay between crawl status checks while
	// waiting for a blocking crawl.
	CrawlPollInterval time.Duration `yaml:"crawl_poll_interval"`

	// HTMLFallback requests raw HTML so pages without markdown can be
	// converted locally.
	HTMLFallback bool `yaml:"html_fallback"`

	// Extractor names the main-content extractor used by the HTML
	// fallback: ExtractorTrafilatura or ExtractorReadability.
	Extractor string `yaml:"extractor"`
}

// DefaultConfig returns a Config with every optional field populated.
func DefaultConfig() *Config {
	return &Config{
		APIURL:            DefaultAPIURL,
		OutputPath:        "technical_documentation.md",
		PageLimit:         100,
		PromptTemplate:    DefaultPromptTemplate,
		PollInterval:      5 * time.Second,
		StallTimeout:      120 * time.Second,
		MaxWait:           300 * time.Second,
		CrawlPollInterval: 2 * time.Second,
		Extractor:         ExtractorTrafilatura,
	}
}

// ApplyEnv overrides fields with any non-empty environment values.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := getenv(EnvOutputPath); v != "" {
		c.OutputPath = v
	}
	if v := getenv(EnvPageLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Errorf(EINVALID, "%s must be an integer, got %q", EnvPageLimit, v)
		}
		c.PageLimit = n
	}
	if v := getenv(EnvPromptTemplate); v != "" {
		c.PromptTemplate = v
	}
	return nil
}

// Validate returns an error if the config cannot drive a run.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return Errorf(EINVALID, "API key required (set %s)", EnvAPIKey)
	}
	if c.BaseURL == "" {
		return Errorf(EINVALID, "base URL required")
	}
	if c.OutputPath == "" {
		return Errorf(EINVALID, "output path required")
	}
	if c.PageLimit <= 0 {
		return Errorf(EINVALID, "page limit must be positive")
	}
	if c.PollInterval <= 0 {
		return Errorf(EINVALID, "poll interval must be positive")
	}
	if c.StallTimeout <= 0 || c.MaxWait <= 0 {
		return Errorf(EINVALID, "stall timeout and max wait must be positive")
	}
	switch c.Extractor {
	case "", ExtractorTrafilatura, ExtractorReadability:
	default:
		return Errorf(EINVALID, "unknown extractor %q", c.Extractor)
	}
	return nil
}
