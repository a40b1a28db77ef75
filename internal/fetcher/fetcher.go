package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FetchOptions control a single static fetch.
type FetchOptions struct {
	UserAgent    string
	BrowserAgent string
	Cookies      []*http.Cookie
	Headers      map[string]string
}

// Fetcher performs plain HTTP fetches with browser-like headers. One instance
// is shared by all strategies; it holds no per-request state.
type Fetcher struct {
	client          *http.Client
	userAgentSelect *UserAgentSelector
}

func New(timeout time.Duration) *Fetcher {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgentSelect: NewUserAgentSelector(),
	}
}

// Get fetches a URL and returns the body. Non-2xx statuses are errors.
func (f *Fetcher) Get(ctx context.Context, url string, opts FetchOptions) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	f.applyHeaders(req, opts)

	return f.do(req)
}

// Post sends a JSON body and returns the response body.
func (f *Fetcher) Post(ctx context.Context, url string, body io.Reader, opts FetchOptions) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	f.applyHeaders(req, opts)

	return f.do(req)
}

func (f *Fetcher) applyHeaders(req *http.Request, opts FetchOptions) {
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = f.userAgentSelect.GetUserAgent(opts.BrowserAgent)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	for _, cookie := range opts.Cookies {
		req.AddCookie(cookie)
	}
}

func (f *Fetcher) do(req *http.Request) ([]byte, error) {
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("rate limited: HTTP 429")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
