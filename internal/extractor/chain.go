package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"
)

// ChainOptions configure the driver. Zero values fall back to the defaults
// used by the HTTP service.
type ChainOptions struct {
	// MinTranscriptLength is the viability floor in characters.
	MinTranscriptLength int

	// StrategyTimeout bounds each strategy's attempt.
	StrategyTimeout time.Duration

	Logger *slog.Logger
}

// Chain tries strategies strictly in order and returns the first viable
// result. Strategies after a success are never started.
type Chain struct {
	strategies []Strategy
	minLength  int
	timeout    time.Duration
	logger     *slog.Logger
}

func NewChain(strategies []Strategy, opts ChainOptions) *Chain {
	minLength := opts.MinTranscriptLength
	if minLength == 0 {
		minLength = 50
	}
	timeout := opts.StrategyTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{
		strategies: strategies,
		minLength:  minLength,
		timeout:    timeout,
		logger:     logger,
	}
}

// Extract runs the chain for one request. The attempt log covers every
// strategy that ran (or was skipped as unconfigured), in order, regardless
// of the outcome.
func (c *Chain) Extract(ctx context.Context, req Request) (*Result, []Attempt, error) {
	if req.Language == "" {
		req.Language = "en"
	}

	attempts := make([]Attempt, 0, len(c.strategies))
	for _, s := range c.strategies {
		if !s.Available(req) {
			attempts = append(attempts, Attempt{
				Method: s.Name(), Detail: "not configured", Time: time.Now(),
			})
			continue
		}

		sctx, cancel := context.WithTimeout(ctx, c.timeout)
		result, err := s.Attempt(sctx, req)
		cancel()

		if err == nil {
			if n := utf8.RuneCountInString(result.Transcript); n < c.minLength {
				err = fmt.Errorf("%w: %d chars (minimum %d)", ErrInsufficientContent, n, c.minLength)
			}
		}

		if err != nil {
			c.logger.Debug("strategy failed",
				slog.String("method", s.Name()),
				slog.String("video_id", req.VideoID),
				slog.Any("err", err))
			attempts = append(attempts, Attempt{
				Method: s.Name(), Detail: err.Error(), Time: time.Now(),
			})
			continue
		}

		attempts = append(attempts, Attempt{
			Method: s.Name(), Succeeded: true,
			Detail: fmt.Sprintf("%d segments, language %s", result.SegmentCount, result.Language),
			Time:   time.Now(),
		})
		c.logger.Info("transcript extracted",
			slog.String("method", s.Name()),
			slog.String("video_id", req.VideoID),
			slog.Int("segments", result.SegmentCount))
		return result, attempts, nil
	}

	return nil, attempts, &AllFailedError{Attempts: attempts}
}
