package mock

import (
	"context"

	"github.com/fwojciec/firedoc"
)

var _ firedoc.RunService = (*RunService)(nil)

// RunService is a mock implementation of firedoc.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *firedoc.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*firedoc.Run, error)
	FindRunsFn    func(ctx context.Context, filter firedoc.RunFilter) ([]*firedoc.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *firedoc.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*firedoc.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter firedoc.RunFilter) ([]*firedoc.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
