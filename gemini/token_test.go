package gemini_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/firedoc"
	"github.com/fwojciec/firedoc/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("")
	require.NoError(t, err)

	t.Run("counts tokens in a generated document", func(t *testing.T) {
		t.Parallel()

		block, err := firedoc.FormatPage(&firedoc.Page{URL: "https://a", Title: "Intro", Markdown: "Hello, world!"})
		require.NoError(t, err)

		count, err := tc.CountTokens(context.Background(), firedoc.NewDocument(block).String())

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("more pages yield more tokens", func(t *testing.T) {
		t.Parallel()

		one, err := tc.CountTokens(context.Background(), "documentation page")
		require.NoError(t, err)

		many, err := tc.CountTokens(context.Background(), strings.Repeat("documentation page\n", 20))
		require.NoError(t, err)

		assert.Greater(t, many, one)
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := tc.CountTokens(ctx, "text")

		require.ErrorIs(t, err, context.Canceled)
	})
}
