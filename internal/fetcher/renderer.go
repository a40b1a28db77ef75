package fetcher

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
)

// Renderer fetches pages through a headless Chrome so that consent walls and
// script-assembled payloads resolve before we read the document.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render navigates to the URL, waits for the document body and returns the
// rendered HTML. The caller bounds the run with its context deadline.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	chromeCtx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var html string
	err := chromedp.Run(chromeCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return html, nil
}
