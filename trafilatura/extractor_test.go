package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/firedoc"
	"github.com/fwojciec/firedoc/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docusaurusPage = `<!DOCTYPE html>
<html>
<head>
<title>Introduction | My Project</title>
<meta property="og:title" content="Introduction">
</head>
<body>
<nav class="navbar">
<a href="/">My Project</a>
<a href="/docs">Docs</a>
<a href="/blog">Blog</a>
</nav>
<div class="sidebar">
<ul>
<li><a href="/docs/intro">Introduction</a></li>
<li><a href="/docs/install">Installation</a></li>
</ul>
</div>
<main class="docMainContainer">
<article>
<h1>Introduction</h1>
<p>Welcome to the documentation. This guide will help you get started.</p>
<h2>Prerequisites</h2>
<p>Before you begin, make sure you have Node.js installed.</p>
</article>
</main>
<footer class="footer">
<p>Copyright 2024 Example Corp</p>
</footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and main content", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(docusaurusPage, "https://docs.example.com/docs/intro")

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
		assert.Contains(t, result.ContentHTML, "Welcome to the documentation")
		assert.Contains(t, result.ContentHTML, "Prerequisites")
		assert.NotContains(t, result.ContentHTML, "Copyright 2024 Example Corp")
	})

	t.Run("works without a page URL", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(docusaurusPage, "")

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Welcome to the documentation")
	})

	t.Run("preserves code blocks", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Code Example</title></head>
<body>
<article>
<h1>Code Examples</h1>
<p>Here is a code example:</p>
<pre><code class="language-go">package main

import "fmt"

func main() {
    fmt.Println("Hello, World!")
}
</code></pre>
<p>And here is inline code: <code>go run main.go</code></p>
</article>
</body>
</html>`

		result, err := trafilatura.NewExtractor().Extract(html, "https://docs.example.com/code")

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "fmt.Println")
		assert.Contains(t, result.ContentHTML, "Hello, World!")
	})

	t.Run("returns EINVALID for blank input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract("  ", "https://docs.example.com")

		assert.Equal(t, firedoc.EINVALID, firedoc.ErrorCode(err))
	})
}
