package extractor

import (
	"context"
	"fmt"

	"github.com/owlim/ytscribe/internal/fetcher"
	"github.com/owlim/ytscribe/internal/youtube"
)

// Renderer resolves a page through a real browser engine.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// HeadlessStrategy renders the watch page in headless Chrome. Slow, so it
// sits behind a config switch and runs late in the chain, but it gets past
// consent walls the static fetch cannot.
type HeadlessStrategy struct {
	Confidence float64
	Enabled    bool

	renderer Renderer
	fetcher  *fetcher.Fetcher
}

func NewHeadlessStrategy(r Renderer, f *fetcher.Fetcher, enabled bool, confidence float64) *HeadlessStrategy {
	return &HeadlessStrategy{
		Confidence: confidence,
		Enabled:    enabled,
		renderer:   r,
		fetcher:    f,
	}
}

func (s *HeadlessStrategy) Name() string { return "headless" }

func (s *HeadlessStrategy) Available(Request) bool { return s.Enabled }

func (s *HeadlessStrategy) Attempt(ctx context.Context, req Request) (*Result, error) {
	page, err := s.renderer.Render(ctx, youtube.WatchURL(req.VideoID))
	if err != nil {
		return nil, fmt.Errorf("rendering watch page: %w", err)
	}

	raw, ok := youtube.FindPlayerJSON(page)
	if !ok {
		return nil, fmt.Errorf("player response not found in rendered page")
	}

	pr, err := youtube.ParsePlayerResponse([]byte(raw))
	if err != nil {
		return nil, err
	}

	return resultFromPlayer(ctx, pr, req, s.Name(), s.Confidence,
		func(ctx context.Context, url string) ([]byte, error) {
			return s.fetcher.Get(ctx, url, fetcher.FetchOptions{})
		})
}
