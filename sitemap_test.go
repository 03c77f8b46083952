package firedoc_test

import (
	"testing"

	"github.com/fwojciec/firedoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLFilter(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://docs.example.com/guide/intro",
		"https://docs.example.com/guide/advanced",
		"https://docs.example.com/api/v1",
		"https://docs.example.com/blog/post",
	}

	t.Run("nil filter keeps everything", func(t *testing.T) {
		t.Parallel()

		f, err := firedoc.NewURLFilter(nil, nil)

		require.NoError(t, err)
		assert.Nil(t, f)
		assert.Equal(t, urls, f.Apply(urls))
	})

	t.Run("include then exclude", func(t *testing.T) {
		t.Parallel()

		f, err := firedoc.NewURLFilter([]string{"/guide/", "/api/"}, []string{"advanced"})

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://docs.example.com/guide/intro",
			"https://docs.example.com/api/v1",
		}, f.Apply(urls))
	})

	t.Run("rejects invalid pattern", func(t *testing.T) {
		t.Parallel()

		_, err := firedoc.NewURLFilter([]string{"("}, nil)

		require.Error(t, err)
		assert.Equal(t, firedoc.EINVALID, firedoc.ErrorCode(err))
	})
}
