// Package trafilatura recovers main page content from raw HTML for pages
// the crawl service returned without markdown.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/firedoc"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements firedoc.Extractor at compile time.
var _ firedoc.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to strip navigation, footers and
// sidebars from documentation pages.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the title and main content HTML of rawHTML.
// Returns EINVALID for blank input and ENOCONTENT when extraction fails.
func (e *Extractor) Extract(rawHTML, pageURL string) (*firedoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, firedoc.Errorf(firedoc.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{EnableFallback: true}
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, firedoc.Errorf(firedoc.ENOCONTENT, "extracting %s: %v", pageURL, err)
	}

	out := &firedoc.ExtractResult{Title: strings.TrimSpace(result.Metadata.Title)}
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, firedoc.Errorf(firedoc.EINTERNAL, "rendering content: %v", err)
		}
		out.ContentHTML = buf.String()
	}
	return out, nil
}
