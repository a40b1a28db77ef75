package browser

import (
	"context"
	"net/http"
	"strings"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/all" // register all browser backends
)

type BrowserType string

const (
	BrowserAuto    BrowserType = "auto"
	BrowserChrome  BrowserType = "chrome"
	BrowserFirefox BrowserType = "firefox"
	BrowserSafari  BrowserType = "safari"
)

// CookieExtractor pulls cookies for a domain out of locally installed
// browsers. Used to let the internal player API see an authenticated session.
type CookieExtractor struct {
	browserType BrowserType
}

func NewCookieExtractor(browserType BrowserType) *CookieExtractor {
	if browserType == "" {
		browserType = BrowserAuto
	}
	return &CookieExtractor{browserType: browserType}
}

// ExtractCookies returns all cookies matching the domain. The caller treats
// an empty result or an error as "no cookies"; extraction is best-effort.
func (ce *CookieExtractor) ExtractCookies(ctx context.Context, domain string) ([]*http.Cookie, error) {
	var cookies []*http.Cookie

	for cookie, err := range kooky.TraverseCookies(ctx) {
		if err != nil {
			continue
		}
		if !ce.matchesBrowser(cookie.Browser) || !matchesDomain(cookie.Domain, domain) {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:   cookie.Name,
			Value:  cookie.Value,
			Domain: cookie.Domain,
			Path:   cookie.Path,
		})
	}

	return cookies, nil
}

func (ce *CookieExtractor) matchesBrowser(info kooky.BrowserInfo) bool {
	if ce.browserType == BrowserAuto {
		return true
	}
	return strings.EqualFold(info.Browser(), string(ce.browserType))
}

func matchesDomain(cookieDomain, target string) bool {
	cookieDomain = strings.TrimPrefix(cookieDomain, ".")
	return cookieDomain == target || strings.HasSuffix(target, "."+cookieDomain) ||
		strings.HasSuffix(cookieDomain, "."+target)
}
