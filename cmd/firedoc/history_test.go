package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/firedoc"
	main "github.com/fwojciec/firedoc/cmd/firedoc"
	"github.com/fwojciec/firedoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists runs with state, site, and credits", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, filter firedoc.RunFilter) ([]*firedoc.Run, error) {
				assert.Equal(t, 20, filter.Limit)
				assert.Nil(t, filter.Mode)
				return []*firedoc.Run{
					{
						Mode:        firedoc.ModeCrawl,
						BaseURL:     "https://react.dev",
						State:       firedoc.StateDone,
						Pages:       12,
						CreditsUsed: 12,
						Partial:     true,
						OutputPath:  "react.md",
						StartedAt:   time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
					},
					{
						Mode:      firedoc.ModeExtract,
						BaseURL:   "https://go.dev/doc",
						State:     firedoc.StateNoURLs,
						StartedAt: time.Date(2025, 1, 14, 10, 0, 0, 0, time.UTC),
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs:   runs,
		}

		err := (&main.HistoryCmd{Limit: 20}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "https://react.dev")
		assert.Contains(t, output, "credits=12")
		assert.Contains(t, output, "output=react.md")
		assert.Contains(t, output, "partial")
		assert.Contains(t, output, "https://go.dev/doc")
		assert.Contains(t, output, "no_urls")
	})

	t.Run("passes mode and URL filters", func(t *testing.T) {
		t.Parallel()

		var got firedoc.RunFilter
		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, filter firedoc.RunFilter) ([]*firedoc.Run, error) {
				got = filter
				return nil, nil
			},
		}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Runs:   runs,
		}

		err := (&main.HistoryCmd{URL: "https://react.dev", Mode: "extract", Limit: 5}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.Mode)
		assert.Equal(t, firedoc.ModeExtract, *got.Mode)
		require.NotNil(t, got.BaseURL)
		assert.Equal(t, "https://react.dev", *got.BaseURL)
		assert.Equal(t, 5, got.Limit)
	})

	t.Run("rejects an unknown mode", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Runs:   &mock.RunService{},
		}

		err := (&main.HistoryCmd{Mode: "scrape"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, firedoc.EINVALID, firedoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "unknown mode")
	})

	t.Run("shows helpful message when no runs exist", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs: &mock.RunService{
				FindRunsFn: func(context.Context, firedoc.RunFilter) ([]*firedoc.Run, error) {
					return []*firedoc.Run{}, nil
				},
			},
		}

		err := (&main.HistoryCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No runs recorded")
	})

	t.Run("returns error when FindRuns fails", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database connection failed")
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Runs: &mock.RunService{
				FindRunsFn: func(context.Context, firedoc.RunFilter) ([]*firedoc.Run, error) {
					return nil, dbErr
				},
			},
		}

		err := (&main.HistoryCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, dbErr, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
