// Package http discovers documentation URLs from website sitemaps.
package http

import (
	"bufio"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/firedoc"
)

// DefaultFetchTimeout bounds each sitemap request.
const DefaultFetchTimeout = 10 * time.Second

// maxIndexDepth bounds sitemap index nesting.
const maxIndexDepth = 5

// Ensure SitemapService implements firedoc.SitemapService.
var _ firedoc.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps via HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, a client with DefaultFetchTimeout is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return &SitemapService{client: client}
}

// DiscoverURLs finds all page URLs in a site's sitemaps, deduplicated and in
// sitemap order. Returns an empty slice if the site has no sitemap.
//
// When baseURL has a non-root path (e.g., https://example.com/docs/),
// only URLs under that path are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *firedoc.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, firedoc.Errorf(firedoc.EINVALID, "invalid base URL %q", baseURL)
	}

	root := &url.URL{Scheme: base.Scheme, Host: base.Host}
	sitemaps, err := s.findSitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	d := &discovery{
		svc:      s,
		prefix:   pathPrefix(base.Path),
		visited:  make(map[string]bool),
		seenURLs: make(map[string]bool),
		urls:     []string{},
	}
	for _, sm := range sitemaps {
		if err := d.walk(ctx, sm, 0); err != nil {
			return nil, err
		}
	}

	urls := filter.Apply(d.urls)
	if urls == nil {
		urls = []string{}
	}
	return urls, nil
}

// discovery accumulates URLs across one DiscoverURLs call.
type discovery struct {
	svc      *SitemapService
	prefix   string
	visited  map[string]bool
	seenURLs map[string]bool
	urls     []string
}

func (d *discovery) walk(ctx context.Context, sitemapURL string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.visited[sitemapURL] || depth > maxIndexDepth {
		return nil
	}
	d.visited[sitemapURL] = true

	root, err := d.svc.fetchSitemap(ctx, sitemapURL)
	if err != nil {
		return err
	}

	if root.Tag == "sitemapindex" {
		for _, child := range locs(root, "sitemap") {
			if err := d.walk(ctx, child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, u := range locs(root, "url") {
		if d.seenURLs[u] || !matchesPathPrefix(u, d.prefix) {
			continue
		}
		d.seenURLs[u] = true
		d.urls = append(d.urls, u)
	}
	return nil
}

// locs returns the trimmed <loc> text of each child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// pathPrefix normalizes a base path into a directory prefix, or "" for root.
func pathPrefix(p string) string {
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// matchesPathPrefix checks if a URL's path lies under prefix, respecting
// path boundaries: /docs/ matches /docs and /docs/intro but not /documentation.
func matchesPathPrefix(rawURL, prefix string) bool {
	if prefix == "" {
		return true
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Path == strings.TrimSuffix(prefix, "/") || strings.HasPrefix(parsed.Path, prefix)
}

// findSitemaps reads Sitemap: directives from robots.txt, falling back to
// /sitemap.xml when robots.txt is missing or declares none.
func (s *SitemapService) findSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"})
	if sitemaps, err := s.parseRobots(ctx, robotsURL.String()); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	exists, err := s.urlExists(ctx, fallback.String())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if !exists {
		return nil, nil
	}
	return []string{fallback.String()}, nil
}

func (s *SitemapService) parseRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.fetch(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	const directive = "sitemap:"
	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), directive) {
			if u := strings.TrimSpace(line[len(directive):]); u != "" {
				sitemaps = append(sitemaps, u)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, firedoc.Errorf(firedoc.EVENDOR, "reading robots.txt: %v", err)
	}
	return sitemaps, nil
}

// fetchSitemap downloads and parses one sitemap document. Gzipped sitemaps
// are detected by their magic bytes rather than the URL suffix.
func (s *SitemapService) fetchSitemap(ctx context.Context, sitemapURL string) (*etree.Element, error) {
	body, err := s.fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	r := bufio.NewReader(body)
	var src io.Reader = r
	if magic, err := r.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, firedoc.Errorf(firedoc.EVENDOR, "decompressing sitemap %s: %v", sitemapURL, err)
		}
		defer gz.Close()
		src = gz
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(src); err != nil {
		return nil, firedoc.Errorf(firedoc.EVENDOR, "parsing sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, firedoc.Errorf(firedoc.EVENDOR, "empty sitemap %s", sitemapURL)
	}
	return root, nil
}

func (s *SitemapService) fetch(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, firedoc.Errorf(firedoc.EINVALID, "invalid URL %q", targetURL)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, firedoc.Errorf(firedoc.EVENDOR, "fetching %s: %v", targetURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, firedoc.Errorf(firedoc.EVENDOR, "HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}

func (s *SitemapService) urlExists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
