// Package htmltomarkdown converts extracted page HTML to Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/firedoc"
)

// Ensure Converter implements firedoc.Converter at compile time.
var _ firedoc.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown with the CommonMark and table plugins.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML into trimmed Markdown, resolving relative links
// against pageURL. Returns EINVALID for blank input.
func (c *Converter) Convert(html, pageURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", firedoc.Errorf(firedoc.EINVALID, "empty HTML input")
	}

	var opts []converter.ConvertOptionFunc
	if pageURL != "" {
		opts = append(opts, converter.WithDomain(pageURL))
	}

	md, err := c.conv.ConvertString(html, opts...)
	if err != nil {
		return "", firedoc.Errorf(firedoc.EINTERNAL, "converting HTML: %v", err)
	}
	return strings.TrimSpace(md), nil
}
