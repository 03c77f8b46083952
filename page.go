package firedoc

// Page represents a documentation page returned by the crawl service.
// Pages are never modified after they are decoded from a vendor response.
type Page struct {
	URL      string
	Title    string
	Markdown string
	Extract  string // LLM-extracted text
	HTML     string // Raw HTML, only present when requested
	Links    []string
}

// Content returns the page text to publish. Extracted text wins over
// markdown because it is only present when an extraction was requested.
func (p *Page) Content() string {
	if p.Extract != "" {
		return p.Extract
	}
	return p.Markdown
}

// HasContent reports whether the page carries markdown or extracted text.
func (p *Page) HasContent() bool {
	return p.Content() != ""
}
