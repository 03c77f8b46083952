package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/firedoc"
	main "github.com/fwojciec/firedoc/cmd/firedoc"
	"github.com/fwojciec/firedoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// envMap returns a Getenv func backed by a map.
func envMap(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}

func siteClient() *mock.Client {
	return &mock.Client{
		CrawlFn: func(_ context.Context, url string, _ firedoc.CrawlOptions) (*firedoc.CrawlResult, error) {
			return &firedoc.CrawlResult{
				Success:     true,
				ID:          "crawl-1",
				CreditsUsed: 2,
				Pages: []*firedoc.Page{
					{URL: url + "/intro", Title: "Intro", Markdown: "Welcome."},
					{URL: url + "/install", Title: "Install", Markdown: "Run go install."},
				},
			}, nil
		},
	}
}

func fixedTokens() *mock.TokenCounter {
	return &mock.TokenCounter{
		CountTokensFn: func(context.Context, string) (int, error) { return 42, nil },
	}
}

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{}, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "Usage:")
	assert.Contains(t, stderr.String(), "no command specified")
}

func TestRun_HelpWithoutCreatingDB(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"--help"}, {"help"}, {"crawl", "--help"}} {
		dbPath := filepath.Join(t.TempDir(), "test.db")
		m := main.NewMain()
		m.DBPath = dbPath

		err := m.Run(context.Background(), args, &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err, "args %v", args)
		_, statErr := os.Stat(dbPath)
		assert.True(t, os.IsNotExist(statErr), "help must not create the database for %v", args)
	}
}

func TestRun_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("writes the document and records the run", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		outPath := filepath.Join(dir, "docs", "out.md")

		m := main.NewMain()
		m.DBPath = filepath.Join(dir, "history.db")
		m.Getenv = envMap(map[string]string{firedoc.EnvAPIKey: "fc-test"})
		m.Client = siteClient()
		m.Tokens = fixedTokens()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"crawl", "https://docs.example.com", "-o", outPath}, stdout, stderr)

		require.NoError(t, err, stderr.String())
		assert.Contains(t, stdout.String(), "Saved 2 pages to "+outPath)

		content, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), firedoc.DocumentHeader)
		assert.Contains(t, string(content), "# Intro\nSource: https://docs.example.com/intro\n\nWelcome.")
		assert.Contains(t, string(content), "# Install")

		// A second invocation against the same database lists the run.
		m2 := main.NewMain()
		m2.DBPath = m.DBPath
		m2.Getenv = envMap(nil)
		stdout.Reset()

		err = m2.Run(context.Background(), []string{"history"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "https://docs.example.com")
		assert.Contains(t, stdout.String(), "done")
		assert.Contains(t, stdout.String(), "output="+outPath)
	})

	t.Run("reads settings from a YAML config file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		outPath := filepath.Join(dir, "from-config.md")
		cfgPath := filepath.Join(dir, "firedoc.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte(
			"api_key: fc-yaml\nbase_url: https://docs.example.com\noutput_path: "+outPath+"\npage_limit: 3\n",
		), 0644))

		var gotLimit int
		client := siteClient()
		crawlFn := client.CrawlFn
		client.CrawlFn = func(ctx context.Context, url string, opts firedoc.CrawlOptions) (*firedoc.CrawlResult, error) {
			gotLimit = opts.Limit
			return crawlFn(ctx, url, opts)
		}

		m := main.NewMain()
		m.DBPath = filepath.Join(dir, "history.db")
		m.Getenv = envMap(map[string]string{main.EnvConfig: cfgPath})
		m.Client = client
		m.Tokens = fixedTokens()

		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"crawl"}, &bytes.Buffer{}, stderr)

		require.NoError(t, err, stderr.String())
		assert.Equal(t, 3, gotLimit)
		assert.FileExists(t, outPath)
	})

	t.Run("runs without history when the database cannot be opened", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocker := filepath.Join(dir, "not-a-dir")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
		outPath := filepath.Join(dir, "out.md")

		m := main.NewMain()
		m.DBPath = filepath.Join(blocker, "history.db")
		m.Getenv = envMap(map[string]string{firedoc.EnvAPIKey: "fc-test"})
		m.Client = siteClient()
		m.Tokens = fixedTokens()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"crawl", "https://docs.example.com", "-o", outPath}, stdout, stderr)

		require.NoError(t, err, stderr.String())
		assert.FileExists(t, outPath)
		assert.Contains(t, stdout.String(), "Saved 2 pages")
		assert.Contains(t, stderr.String(), "run history disabled")

		// The history command itself still needs the database.
		m2 := main.NewMain()
		m2.DBPath = m.DBPath
		m2.Getenv = envMap(nil)
		stderr.Reset()

		err = m2.Run(context.Background(), []string{"history"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "failed to open history database")
	})

	t.Run("fails without an API key", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		m := main.NewMain()
		m.DBPath = filepath.Join(dir, "history.db")
		m.Getenv = envMap(nil)
		m.Client = siteClient()
		m.Tokens = fixedTokens()

		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"crawl", "https://docs.example.com", "-o", filepath.Join(dir, "out.md")}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), firedoc.EnvAPIKey)
		assert.NoFileExists(t, filepath.Join(dir, "out.md"))
	})

	t.Run("fails when the named config file is missing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		m := main.NewMain()
		m.DBPath = filepath.Join(dir, "history.db")
		m.Getenv = envMap(nil)

		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"--config", filepath.Join(dir, "missing.yaml"), "history"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, firedoc.ENOTFOUND, firedoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}
