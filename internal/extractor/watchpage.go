package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/owlim/ytscribe/internal/fetcher"
	"github.com/owlim/ytscribe/internal/youtube"
)

// WatchPageStrategy scrapes the public watch page and reads the player
// payload YouTube embeds in a script tag.
type WatchPageStrategy struct {
	Confidence   float64
	WatchBaseURL string // overridable for testing
	BrowserAgent string

	fetcher *fetcher.Fetcher
}

func NewWatchPageStrategy(f *fetcher.Fetcher, browserAgent string, confidence float64) *WatchPageStrategy {
	return &WatchPageStrategy{
		Confidence:   confidence,
		WatchBaseURL: "https://www.youtube.com/watch",
		BrowserAgent: browserAgent,
		fetcher:      f,
	}
}

func (s *WatchPageStrategy) Name() string { return "watchpage" }

func (s *WatchPageStrategy) Available(Request) bool { return true }

func (s *WatchPageStrategy) Attempt(ctx context.Context, req Request) (*Result, error) {
	opts := fetcher.FetchOptions{BrowserAgent: s.BrowserAgent}
	page, err := s.fetcher.Get(ctx, s.WatchBaseURL+"?v="+req.VideoID, opts)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	raw, err := playerJSONFromHTML(page)
	if err != nil {
		return nil, err
	}

	pr, err := youtube.ParsePlayerResponse([]byte(raw))
	if err != nil {
		return nil, err
	}

	return resultFromPlayer(ctx, pr, req, s.Name(), s.Confidence,
		func(ctx context.Context, url string) ([]byte, error) {
			return s.fetcher.Get(ctx, url, opts)
		})
}

// playerJSONFromHTML walks the page's script tags for the player payload.
func playerJSONFromHTML(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parsing watch page: %w", err)
	}

	var raw string
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		if !strings.Contains(text, "ytInitialPlayerResponse") {
			return true
		}
		if found, ok := youtube.FindPlayerJSON(text); ok {
			raw = found
			return false
		}
		return true
	})
	if raw == "" {
		return "", fmt.Errorf("player response not found in watch page")
	}
	return raw, nil
}
