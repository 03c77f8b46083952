package firedoc_test

import (
	"testing"

	"github.com/fwojciec/firedoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPage(t *testing.T) {
	t.Parallel()

	t.Run("formats markdown page with title and source", func(t *testing.T) {
		t.Parallel()

		page := &firedoc.Page{
			URL:      "https://docs.example.com/intro",
			Title:    "Introduction",
			Markdown: "Welcome to the docs.",
		}

		result, err := firedoc.FormatPage(page)

		require.NoError(t, err)
		expected := "# Introduction\nSource: https://docs.example.com/intro\n\nWelcome to the docs.\n\n---\n"
		assert.Equal(t, expected, result)
	})

	t.Run("prefers extracted text over markdown", func(t *testing.T) {
		t.Parallel()

		page := &firedoc.Page{
			URL:      "https://docs.example.com/api",
			Title:    "API",
			Markdown: "raw markdown",
			Extract:  "## API Documentation\n\nReadable text.",
		}

		result, err := firedoc.FormatPage(page)

		require.NoError(t, err)
		assert.Contains(t, result, "## API Documentation\n\nReadable text.")
		assert.NotContains(t, result, "raw markdown")
	})

	t.Run("uses placeholders for missing metadata", func(t *testing.T) {
		t.Parallel()

		result, err := firedoc.FormatPage(&firedoc.Page{Markdown: "body"})

		require.NoError(t, err)
		assert.Equal(t, "# Untitled\nSource: Unknown URL\n\nbody\n\n---\n", result)
	})

	t.Run("returns ENOCONTENT when page has no content", func(t *testing.T) {
		t.Parallel()

		_, err := firedoc.FormatPage(&firedoc.Page{
			URL:   "https://docs.example.com/empty",
			Title: "Empty",
		})

		require.Error(t, err)
		assert.Equal(t, firedoc.ENOCONTENT, firedoc.ErrorCode(err))
		assert.Contains(t, firedoc.ErrorMessage(err), "https://docs.example.com/empty")
	})

	t.Run("preserves markdown content", func(t *testing.T) {
		t.Parallel()

		content := "## Heading\n\n- item 1\n- item 2\n\n```go\nfunc main() {}\n```"
		result, err := firedoc.FormatPage(&firedoc.Page{Title: "Code", URL: "u", Markdown: content})

		require.NoError(t, err)
		assert.Equal(t, "# Code\nSource: u\n\n"+content+"\n\n---\n", result)
	})
}
