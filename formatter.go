package firedoc

import "strings"

// Placeholders used when the vendor omits page metadata.
const (
	UntitledPage = "Untitled"
	UnknownURL   = "Unknown URL"
)

// FormatPage formats a page as a markdown block:
//
//	# <title>
//	Source: <url>
//
//	<content>
//
//	---
//
// Returns ENOCONTENT if the page has neither markdown nor extracted text.
func FormatPage(page *Page) (string, error) {
	url := page.URL
	if url == "" {
		url = UnknownURL
	}

	content := page.Content()
	if content == "" {
		return "", Errorf(ENOCONTENT, "no content found for %s", url)
	}

	title := page.Title
	if title == "" {
		title = UntitledPage
	}

	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(title)
	b.WriteString("\nSource: ")
	b.WriteString(url)
	b.WriteString("\n\n")
	b.WriteString(content)
	b.WriteString("\n\n---\n")
	return b.String(), nil
}
