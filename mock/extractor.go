package mock

import "github.com/fwojciec/firedoc"

// Compile-time interface verification.
var (
	_ firedoc.Extractor   = (*Extractor)(nil)
	_ firedoc.Converter   = (*Converter)(nil)
	_ firedoc.TitleFinder = (*TitleFinder)(nil)
)

// Extractor is a mock implementation of firedoc.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*firedoc.ExtractResult, error)
}

func (e *Extractor) Extract(html, pageURL string) (*firedoc.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}

// Converter is a mock implementation of firedoc.Converter.
type Converter struct {
	ConvertFn func(html, pageURL string) (string, error)
}

func (c *Converter) Convert(html, pageURL string) (string, error) {
	return c.ConvertFn(html, pageURL)
}

// TitleFinder is a mock implementation of firedoc.TitleFinder.
type TitleFinder struct {
	FindTitleFn func(html string) string
}

func (f *TitleFinder) FindTitle(html string) string {
	return f.FindTitleFn(html)
}
