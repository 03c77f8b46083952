package crawl_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/firedoc"
	"github.com/fwojciec/firedoc/crawl"
	"github.com/fwojciec/firedoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_Format(t *testing.T) {
	t.Parallel()

	t.Run("formats pages in order and skips empty ones", func(t *testing.T) {
		t.Parallel()

		f := &crawl.Formatter{}
		pages := []*firedoc.Page{
			{URL: "https://a", Title: "A", Markdown: "alpha"},
			{URL: "https://b", Title: "B"},
			{URL: "https://c", Title: "C", Extract: "gamma"},
		}

		doc, skipped := f.Format(pages)

		assert.Equal(t, 1, skipped)
		require.Equal(t, 2, doc.Len())
		blocks := doc.Blocks()
		assert.Equal(t, "# A\nSource: https://a\n\nalpha\n\n---\n", blocks[0])
		assert.Equal(t, "# C\nSource: https://c\n\ngamma\n\n---\n", blocks[1])
	})

	t.Run("returns empty document when nothing has content", func(t *testing.T) {
		t.Parallel()

		doc, skipped := (&crawl.Formatter{}).Format([]*firedoc.Page{{URL: "https://a"}})

		assert.Equal(t, 1, skipped)
		assert.Equal(t, 0, doc.Len())
	})
}

func TestFormatter_FormatPage(t *testing.T) {
	t.Parallel()

	t.Run("converts raw HTML when markdown is missing", func(t *testing.T) {
		t.Parallel()

		f := &crawl.Formatter{
			Extractor: &mock.Extractor{
				ExtractFn: func(html, pageURL string) (*firedoc.ExtractResult, error) {
					assert.Equal(t, "<html>raw</html>", html)
					assert.Equal(t, "https://a", pageURL)
					return &firedoc.ExtractResult{Title: "From HTML", ContentHTML: "<p>main</p>"}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(html, pageURL string) (string, error) {
					assert.Equal(t, "<p>main</p>", html)
					assert.Equal(t, "https://a", pageURL)
					return "main", nil
				},
			},
		}
		page := &firedoc.Page{URL: "https://a", HTML: "<html>raw</html>"}

		block, err := f.FormatPage(page)

		require.NoError(t, err)
		assert.Equal(t, "# From HTML\nSource: https://a\n\nmain\n\n---\n", block)
		assert.Empty(t, page.Markdown, "input page must not be modified")
	})

	t.Run("keeps vendor markdown over raw HTML", func(t *testing.T) {
		t.Parallel()

		f := &crawl.Formatter{
			Extractor: &mock.Extractor{
				ExtractFn: func(string, string) (*firedoc.ExtractResult, error) {
					t.Error("extractor should not be called")
					return nil, nil
				},
			},
			Converter: &mock.Converter{},
		}

		block, err := f.FormatPage(&firedoc.Page{URL: "https://a", Title: "A", Markdown: "md", HTML: "<p>x</p>"})

		require.NoError(t, err)
		assert.Contains(t, block, "\n\nmd\n\n")
	})

	t.Run("returns ENOCONTENT when extraction fails", func(t *testing.T) {
		t.Parallel()

		f := &crawl.Formatter{
			Extractor: &mock.Extractor{
				ExtractFn: func(string, string) (*firedoc.ExtractResult, error) {
					return nil, errors.New("boom")
				},
			},
			Converter: &mock.Converter{},
		}

		_, err := f.FormatPage(&firedoc.Page{URL: "https://a", HTML: "<p>x</p>"})

		assert.Equal(t, firedoc.ENOCONTENT, firedoc.ErrorCode(err))
	})

	t.Run("returns ENOCONTENT when extraction finds no main content", func(t *testing.T) {
		t.Parallel()

		f := &crawl.Formatter{
			Extractor: &mock.Extractor{
				ExtractFn: func(string, string) (*firedoc.ExtractResult, error) {
					return &firedoc.ExtractResult{Title: "T"}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(string, string) (string, error) {
					t.Error("converter should not be called")
					return "", nil
				},
			},
		}

		_, err := f.FormatPage(&firedoc.Page{URL: "https://a", HTML: "<p>x</p>"})

		assert.Equal(t, firedoc.ENOCONTENT, firedoc.ErrorCode(err))
	})

	t.Run("fills missing title from HTML", func(t *testing.T) {
		t.Parallel()

		f := &crawl.Formatter{
			Titles: &mock.TitleFinder{
				FindTitleFn: func(string) string { return "Found" },
			},
		}

		block, err := f.FormatPage(&firedoc.Page{URL: "https://a", Markdown: "md", HTML: "<title>Found</title>"})

		require.NoError(t, err)
		assert.Equal(t, "# Found\nSource: https://a\n\nmd\n\n---\n", block)
	})

	t.Run("uses placeholder title without HTML", func(t *testing.T) {
		t.Parallel()

		block, err := (&crawl.Formatter{}).FormatPage(&firedoc.Page{Markdown: "md"})

		require.NoError(t, err)
		assert.Equal(t, "# Untitled\nSource: Unknown URL\n\nmd\n\n---\n", block)
	})
}
