// Package readability is the alternative main-content extractor, selected
// with `extractor: readability` for sites trafilatura handles poorly.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/firedoc"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements firedoc.Extractor at compile time.
var _ firedoc.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article title and content of rawHTML. Relative
// links are made absolute against pageURL when it parses.
func (e *Extractor) Extract(rawHTML, pageURL string) (*firedoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, firedoc.Errorf(firedoc.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, firedoc.Errorf(firedoc.ENOCONTENT, "extracting %s: %v", pageURL, err)
	}

	return &firedoc.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
