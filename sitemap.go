package firedoc

import (
	"context"
	"regexp"
)

// SitemapService discovers URLs from website sitemaps without spending
// crawl credits.
type SitemapService interface {
	// DiscoverURLs reads robots.txt Sitemap directives, falling back to
	// /sitemap.xml, and resolves sitemap indexes recursively.
	// A nil filter returns every URL.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter narrows a URL list by pattern.
type URLFilter struct {
	// Include keeps only URLs matching at least one pattern, when set.
	Include []*regexp.Regexp

	// Exclude drops URLs matching any pattern. Applied after Include.
	Exclude []*regexp.Regexp
}

// NewURLFilter compiles include and exclude patterns.
// Returns nil when both lists are empty.
func NewURLFilter(include, exclude []string) (*URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	f := &URLFilter{}
	for _, p := range include {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid include pattern %q: %v", p, err)
		}
		f.Include = append(f.Include, re)
	}
	for _, p := range exclude {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid exclude pattern %q: %v", p, err)
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}

// Apply returns the URLs that pass the filter, preserving order.
func (f *URLFilter) Apply(urls []string) []string {
	if f == nil {
		return urls
	}
	var kept []string
	for _, u := range urls {
		if f.Match(u) {
			kept = append(kept, u)
		}
	}
	return kept
}
