package crawl

import (
	"log/slog"

	"github.com/fwojciec/firedoc"
)

// Formatter turns pages into document blocks. When Extractor and
// Converter are set, pages that arrived with raw HTML but no markdown are
// converted locally before formatting.
type Formatter struct {
	Extractor firedoc.Extractor
	Converter firedoc.Converter
	Titles    firedoc.TitleFinder
	Logger    *slog.Logger
}

// Format formats pages in order and returns the document along with the
// number of pages skipped for lack of content.
func (f *Formatter) Format(pages []*firedoc.Page) (*firedoc.Document, int) {
	doc := firedoc.NewDocument()
	skipped := 0
	for _, page := range pages {
		block, err := f.FormatPage(page)
		if err != nil {
			skipped++
			f.logger().Warn("skipping page", "url", page.URL, "err", firedoc.ErrorMessage(err))
			continue
		}
		doc.Append(block)
	}
	return doc, skipped
}

// FormatPage formats a single page, recovering content and title from raw
// HTML where possible. Returns ENOCONTENT if nothing can be recovered.
func (f *Formatter) FormatPage(page *firedoc.Page) (string, error) {
	return firedoc.FormatPage(f.resolve(page))
}

// resolve returns page, or a copy with content and title filled in from
// its raw HTML. The input page is never modified.
func (f *Formatter) resolve(page *firedoc.Page) *firedoc.Page {
	if page.HTML == "" {
		return page
	}

	resolved := *page
	if !resolved.HasContent() && f.Extractor != nil && f.Converter != nil {
		if md, title, err := f.convert(page); err != nil {
			f.logger().Debug("html fallback failed", "url", page.URL, "err", err)
		} else {
			resolved.Markdown = md
			if resolved.Title == "" {
				resolved.Title = title
			}
		}
	}
	if resolved.Title == "" && f.Titles != nil {
		resolved.Title = f.Titles.FindTitle(page.HTML)
	}
	return &resolved
}

func (f *Formatter) convert(page *firedoc.Page) (markdown, title string, err error) {
	result, err := f.Extractor.Extract(page.HTML, page.URL)
	if err != nil {
		return "", "", err
	}
	if result.ContentHTML == "" {
		return "", result.Title, firedoc.Errorf(firedoc.ENOCONTENT, "no main content found")
	}
	markdown, err = f.Converter.Convert(result.ContentHTML, page.URL)
	if err != nil {
		return "", "", err
	}
	return markdown, result.Title, nil
}

func (f *Formatter) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return f.Logger
}
