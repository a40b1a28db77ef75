// Package transcript is the public entry point: it assembles the default
// strategy chain from configuration and runs extractions.
package transcript

import (
	"context"
	"log/slog"
	"time"

	"github.com/owlim/ytscribe/internal/browser"
	"github.com/owlim/ytscribe/internal/config"
	"github.com/owlim/ytscribe/internal/extractor"
	"github.com/owlim/ytscribe/internal/fetcher"
	"github.com/owlim/ytscribe/internal/youtube"
)

type Service struct {
	config *config.Config
	chain  *extractor.Chain
}

type Options struct {
	Language string
	APIKey   string
}

func New(cfg *config.Config, logger *slog.Logger) *Service {
	timeout := time.Duration(cfg.Network.StrategyTimeout) * time.Second
	f := fetcher.New(timeout)

	var cookies extractor.CookieSource
	if cfg.Browser.CookiesEnabled {
		cookies = browser.NewCookieExtractor(browser.BrowserType(cfg.Browser.Default))
	}

	conf := cfg.Extraction.Confidence
	strategies := []extractor.Strategy{
		extractor.NewOfficialStrategy(f, conf["official"]),
		extractor.NewInnertubeStrategy(f, cookies, conf["innertube"]),
		extractor.NewWatchPageStrategy(f, cfg.Network.BrowserAgent, conf["watchpage"]),
		extractor.NewHeadlessStrategy(fetcher.NewRenderer(), f, cfg.Extraction.EnableHeadless, conf["headless"]),
		extractor.NewYTAPIStrategy(conf["ytapi"]),
		extractor.NewCaptionLibStrategy(conf["captionlib"]),
	}

	chain := extractor.NewChain(strategies, extractor.ChainOptions{
		MinTranscriptLength: cfg.Extraction.MinTranscriptLength,
		StrategyTimeout:     timeout,
		Logger:              logger,
	})

	return &Service{config: cfg, chain: chain}
}

// Extract resolves the argument to a video ID and runs the chain. The
// attempt log is returned for both outcomes.
func (s *Service) Extract(ctx context.Context, videoArg string, opts Options) (*extractor.Result, []extractor.Attempt, error) {
	videoID, err := youtube.ExtractVideoID(videoArg)
	if err != nil {
		return nil, nil, err
	}

	lang := opts.Language
	if lang == "" {
		lang = s.config.Extraction.DefaultLanguage
	}
	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = s.config.Extraction.APIKey
	}

	return s.chain.Extract(ctx, extractor.Request{
		VideoID:  videoID,
		Language: lang,
		APIKey:   apiKey,
	})
}
