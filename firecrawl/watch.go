package firecrawl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/fwojciec/firedoc"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

// errStreamEnded stops the errgroup once the vendor closes the stream.
var errStreamEnded = errors.New("stream ended")

// catchupData is the payload of a "catchup" frame: everything the crawl
// produced before the socket connected.
type catchupData struct {
	Status      string     `json:"status"`
	CreditsUsed int        `json:"creditsUsed"`
	Data        []document `json:"data"`
}

// WatchCrawl submits a crawl and streams its events over a websocket.
// It returns nil after delivering a completed or failed event.
func (c *Client) WatchCrawl(ctx context.Context, siteURL string, opts firedoc.CrawlOptions, fn firedoc.CrawlEventFunc) error {
	sub, err := c.startCrawl(ctx, siteURL, opts)
	if err != nil {
		return err
	}
	if !sub.Success {
		fn(firedoc.CrawlEvent{Type: firedoc.CrawlEventFailed, Error: sub.Error})
		return nil
	}

	wsURL, err := c.websocketURL("/v1/crawl/" + url.PathEscape(sub.ID))
	if err != nil {
		return err
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return firedoc.Errorf(firedoc.EVENDOR, "watching crawl %s: %v", sub.ID, err)
	}
	defer conn.Close()

	g, gctx := errgroup.WithContext(ctx)

	// Unblock ReadJSON when the caller gives up.
	g.Go(func() error {
		<-gctx.Done()
		return conn.Close()
	})

	g.Go(func() error {
		for {
			var msg wsMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				return firedoc.Errorf(firedoc.EVENDOR, "watching crawl %s: %v", sub.ID, err)
			}
			if done := dispatch(msg, fn); done {
				return errStreamEnded
			}
		}
	})

	err = g.Wait()
	if errors.Is(err, errStreamEnded) {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// dispatch translates one frame into events and reports whether the
// stream has reached a terminal event.
func dispatch(msg wsMessage, fn firedoc.CrawlEventFunc) bool {
	switch msg.Type {
	case "catchup":
		var data catchupData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			fn(firedoc.CrawlEvent{Type: firedoc.CrawlEventFailed, Error: "malformed catchup frame: " + err.Error()})
			return true
		}
		if len(data.Data) > 0 {
			fn(firedoc.CrawlEvent{
				Type:        firedoc.CrawlEventPage,
				Pages:       toPages(data.Data),
				CreditsUsed: data.CreditsUsed,
			})
		}
		switch firedoc.ParseJobStatus(data.Status) {
		case firedoc.JobCompleted:
			fn(firedoc.CrawlEvent{Type: firedoc.CrawlEventCompleted})
			return true
		case firedoc.JobFailed:
			fn(firedoc.CrawlEvent{Type: firedoc.CrawlEventFailed, Error: "crawl failed"})
			return true
		}
		return false
	case "document":
		var doc document
		if err := json.Unmarshal(msg.Data, &doc); err != nil {
			fn(firedoc.CrawlEvent{Type: firedoc.CrawlEventFailed, Error: "malformed document frame: " + err.Error()})
			return true
		}
		fn(firedoc.CrawlEvent{Type: firedoc.CrawlEventPage, Pages: []*firedoc.Page{toPage(doc)}})
		return false
	case "done":
		fn(firedoc.CrawlEvent{Type: firedoc.CrawlEventCompleted})
		return true
	case "error":
		fn(firedoc.CrawlEvent{Type: firedoc.CrawlEventFailed, Error: msg.Error})
		return true
	default:
		return false
	}
}

func (c *Client) websocketURL(path string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", firedoc.Errorf(firedoc.EINVALID, "invalid API URL %q: %v", c.baseURL, err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String(), nil
}
