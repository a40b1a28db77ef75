package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript"
	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript_formatters"
	caption "github.com/lincaiyong/youtube-caption"

	"github.com/owlim/ytscribe/internal/youtube"
)

// The library adapters are last-resort strategies over third-party caption
// clients. Each client is constructed once when the chain is built and
// injected here; the adapters hold no per-request state.

type formattedTranscriptClient interface {
	GetFormattedTranscripts(videoID string, languages []string, preserveFormatting bool) (string, error)
}

// runBounded executes fn in a goroutine and abandons it when ctx expires.
// Neither caption library takes a context, so this is how the chain's
// per-strategy timeout reaches them.
func runBounded(ctx context.Context, fn func() (*Result, error)) (*Result, error) {
	type outcome struct {
		result *Result
		err    error
	}
	ch := make(chan outcome, 1)
	go func() {
		result, err := fn()
		ch <- outcome{result, err}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-ch:
		return o.result, o.err
	}
}

// YTAPIStrategy wraps github.com/horiagug/youtube-transcript-api-go.
type YTAPIStrategy struct {
	Confidence float64

	client formattedTranscriptClient
}

func NewYTAPIStrategy(confidence float64) *YTAPIStrategy {
	formatter := yt_transcript_formatters.NewTextFormatter(
		yt_transcript_formatters.WithTimestamps(false),
		yt_transcript_formatters.WithLanguageCode(false),
	)
	return &YTAPIStrategy{
		Confidence: confidence,
		client:     yt_transcript.NewClient(yt_transcript.WithFormatter(formatter)),
	}
}

func (s *YTAPIStrategy) Name() string { return "ytapi" }

func (s *YTAPIStrategy) Available(Request) bool { return s.client != nil }

func (s *YTAPIStrategy) Attempt(ctx context.Context, req Request) (*Result, error) {
	return runBounded(ctx, func() (*Result, error) {
		formatted, err := s.client.GetFormattedTranscripts(req.VideoID, []string{req.Language}, false)
		if err != nil {
			return nil, fmt.Errorf("transcript library: %w", err)
		}

		var parts []string
		for _, line := range strings.Split(formatted, "\n") {
			if text := youtube.NormalizeText(line); text != "" {
				parts = append(parts, text)
			}
		}
		if len(parts) == 0 {
			return nil, youtube.ErrNoCaptions
		}

		return &Result{
			Transcript:   strings.Join(parts, " "),
			SegmentCount: len(parts),
			Language:     req.Language,
			Source:       s.Name(),
			Confidence:   s.Confidence,
		}, nil
	})
}

// CaptionLibStrategy wraps github.com/lincaiyong/youtube-caption. The
// library picks the video's default track itself, so this runs last.
type CaptionLibStrategy struct {
	Confidence float64
}

func NewCaptionLibStrategy(confidence float64) *CaptionLibStrategy {
	return &CaptionLibStrategy{Confidence: confidence}
}

func (s *CaptionLibStrategy) Name() string { return "captionlib" }

func (s *CaptionLibStrategy) Available(Request) bool { return true }

func (s *CaptionLibStrategy) Attempt(ctx context.Context, req Request) (*Result, error) {
	return runBounded(ctx, func() (*Result, error) {
		captions, err := caption.Download(req.VideoID)
		if err != nil {
			return nil, fmt.Errorf("caption library: %w", err)
		}

		var segments []youtube.Segment
		for _, t := range captions.GetSubtitleText() {
			if text := youtube.NormalizeText(t.Text); text != "" {
				segments = append(segments, youtube.Segment{Text: text, Start: t.StartTime})
			}
		}
		if len(segments) == 0 {
			return nil, youtube.ErrNoCaptions
		}

		return &Result{
			Transcript:   youtube.JoinSegments(segments),
			SegmentCount: len(segments),
			Language:     req.Language,
			Source:       s.Name(),
			Confidence:   s.Confidence,
		}, nil
	})
}
