package firedoc

// ExtractResult holds the main content found in a raw HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with navigation,
	// footers and sidebars removed.
	ContentHTML string
}

// Extractor extracts main content from raw HTML. It is only used for
// pages the crawl service returned without markdown.
type Extractor interface {
	// Extract finds the main content of html. pageURL, when set, is used
	// for metadata and link resolution.
	Extract(html, pageURL string) (*ExtractResult, error)
}

// TitleFinder recovers a page title from raw HTML.
type TitleFinder interface {
	// FindTitle returns the document title, or "" if none is present.
	FindTitle(html string) string
}
