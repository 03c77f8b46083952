package firecrawl

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/fwojciec/firedoc"
)

type extractOptions struct {
	Prompt string `json:"prompt,omitempty"`
}

type scrapeOptions struct {
	Formats []string        `json:"formats,omitempty"`
	Extract *extractOptions `json:"extract,omitempty"`
}

type crawlRequest struct {
	URL           string        `json:"url"`
	Limit         int           `json:"limit,omitempty"`
	ScrapeOptions scrapeOptions `json:"scrapeOptions"`
}

type batchScrapeRequest struct {
	URLs    []string        `json:"urls"`
	Formats []string        `json:"formats,omitempty"`
	Extract *extractOptions `json:"extract,omitempty"`
}

// submitResponse is returned by POST /v1/crawl and POST /v1/batch/scrape.
type submitResponse struct {
	Success     bool     `json:"success"`
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	InvalidURLs []string `json:"invalidURLs"`
	Error       string   `json:"error"`
}

// statusResponse is returned by the crawl and batch status endpoints.
type statusResponse struct {
	Success     bool       `json:"success"`
	Status      string     `json:"status"`
	Total       int        `json:"total"`
	Completed   int        `json:"completed"`
	CreditsUsed int        `json:"creditsUsed"`
	Next        string     `json:"next"`
	Data        []document `json:"data"`
	Error       string     `json:"error"`
}

type document struct {
	Markdown string          `json:"markdown"`
	HTML     string          `json:"html"`
	RawHTML  string          `json:"rawHtml"`
	Links    []string        `json:"links"`
	Extract  json.RawMessage `json:"extract"`
	JSON     json.RawMessage `json:"json"`
	Metadata metadata        `json:"metadata"`
}

type metadata struct {
	Title      flexString `json:"title"`
	SourceURL  string     `json:"sourceURL"`
	URL        string     `json:"url"`
	StatusCode int        `json:"statusCode"`
	Error      string     `json:"error"`
}

// wsMessage is a frame on the crawl websocket.
type wsMessage struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// flexString decodes either a JSON string or an array of strings. Page
// metadata sometimes repeats a tag, which the service reports as an array.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '[' {
		var parts []string
		if err := json.Unmarshal(b, &parts); err != nil {
			return err
		}
		if len(parts) > 0 {
			*s = flexString(parts[0])
		}
		return nil
	}
	if string(b) == "null" {
		return nil
	}
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = flexString(v)
	return nil
}

func toPage(d document) *firedoc.Page {
	url := d.Metadata.SourceURL
	if url == "" {
		url = d.Metadata.URL
	}
	html := d.RawHTML
	if html == "" {
		html = d.HTML
	}
	extract := extractText(d.Extract)
	if extract == "" {
		extract = extractText(d.JSON)
	}
	return &firedoc.Page{
		URL:      url,
		Title:    string(d.Metadata.Title),
		Markdown: d.Markdown,
		Extract:  extract,
		HTML:     html,
		Links:    d.Links,
	}
}

func toPages(docs []document) []*firedoc.Page {
	pages := make([]*firedoc.Page, 0, len(docs))
	for _, d := range docs {
		pages = append(pages, toPage(d))
	}
	return pages
}

// extractText returns LLM extraction output as text. Plain strings are
// returned unchanged; structured output is rendered as a JSON code block.
func extractText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return ""
		}
		return s
	}
	if string(trimmed) == "{}" || string(trimmed) == "[]" {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return ""
	}
	return "```json\n" + strings.TrimSpace(buf.String()) + "\n```"
}

func formatNames(formats []firedoc.Format) []string {
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, string(f))
	}
	return names
}
