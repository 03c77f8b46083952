package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/firedoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ firedoc.RunService = (*RunService)(nil)

// RunService implements firedoc.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

const runColumns = `id, mode, base_url, job_id, state, urls, pages, skipped,
	credits_used, partial, output_path, content_hash, started_at, finished_at`

// CreateRun records a finished run and assigns its ID.
func (s *RunService) CreateRun(ctx context.Context, run *firedoc.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = run.StartedAt
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, string(run.Mode), run.BaseURL, run.JobID, string(run.State),
		run.URLs, run.Pages, run.Skipped, run.CreditsUsed, run.Partial,
		run.OutputPath, run.ContentHash,
		formatTime(run.StartedAt), formatTime(run.FinishedAt))

	return err
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*firedoc.Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, firedoc.Errorf(firedoc.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter firedoc.RunFilter) ([]*firedoc.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + runColumns + " FROM runs WHERE 1=1")

	if filter.Mode != nil {
		query.WriteString(" AND mode = ?")
		args = append(args, string(*filter.Mode))
	}
	if filter.BaseURL != nil {
		query.WriteString(" AND base_url = ?")
		args = append(args, *filter.BaseURL)
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*firedoc.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*firedoc.Run, error) {
	var run firedoc.Run
	var mode, state, startedAt, finishedAt string

	if err := row.Scan(&run.ID, &mode, &run.BaseURL, &run.JobID, &state,
		&run.URLs, &run.Pages, &run.Skipped, &run.CreditsUsed, &run.Partial,
		&run.OutputPath, &run.ContentHash, &startedAt, &finishedAt); err != nil {
		return nil, err
	}
	run.Mode = firedoc.Mode(mode)
	run.State = firedoc.RunState(state)

	var err error
	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
		return nil, err
	}
	return &run, nil
}
