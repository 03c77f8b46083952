package main

import (
	"fmt"

	"github.com/fwojciec/firedoc"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := firedoc.RunFilter{Limit: c.Limit}
	if c.Mode != "" {
		mode := firedoc.Mode(c.Mode)
		if mode != firedoc.ModeCrawl && mode != firedoc.ModeExtract {
			err := firedoc.Errorf(firedoc.EINVALID, "unknown mode %q (want crawl or extract)", c.Mode)
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
			return err
		}
		filter.Mode = &mode
	}
	if c.URL != "" {
		filter.BaseURL = &c.URL
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'firedoc crawl' or 'firedoc extract' to start one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %-7s  %-16s  %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04"), r.Mode, r.State, r.BaseURL)
		fmt.Fprintf(deps.Stdout, "    pages=%d skipped=%d credits=%d", r.Pages, r.Skipped, r.CreditsUsed)
		if r.Partial {
			fmt.Fprint(deps.Stdout, " partial")
		}
		if r.OutputPath != "" && r.State == firedoc.StateDone {
			fmt.Fprintf(deps.Stdout, " output=%s", r.OutputPath)
		}
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}
