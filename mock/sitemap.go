package mock

import (
	"context"

	"github.com/fwojciec/firedoc"
)

var _ firedoc.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of firedoc.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *firedoc.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *firedoc.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
