// Package goquery recovers page metadata from raw HTML.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/firedoc"
)

// Ensure TitleFinder implements firedoc.TitleFinder at compile time.
var _ firedoc.TitleFinder = (*TitleFinder)(nil)

// TitleFinder reads a page title from HTML, trying <title>, then the
// og:title meta tag, then the first <h1>.
type TitleFinder struct{}

// NewTitleFinder creates a new TitleFinder.
func NewTitleFinder() *TitleFinder {
	return &TitleFinder{}
}

// FindTitle returns the first non-blank title candidate, with inner
// whitespace collapsed. Unparseable HTML yields "".
func (f *TitleFinder) FindTitle(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	if title := clean(doc.Find("head title").First().Text()); title != "" {
		return title
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if title := clean(og); title != "" {
			return title
		}
	}
	return clean(doc.Find("h1").First().Text())
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
