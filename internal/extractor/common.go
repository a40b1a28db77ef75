package extractor

import (
	"context"
	"fmt"

	"github.com/owlim/ytscribe/internal/youtube"
)

// resultFromPlayer is the shared tail of every player-payload strategy:
// playability check, track selection, caption fetch, normalization.
func resultFromPlayer(ctx context.Context, pr *youtube.PlayerResponse, req Request,
	source string, confidence float64, fetchTrack func(context.Context, string) ([]byte, error)) (*Result, error) {

	if err := pr.CheckPlayability(); err != nil {
		return nil, err
	}

	tracks, err := pr.Tracks()
	if err != nil {
		return nil, err
	}

	track, err := youtube.SelectTrack(tracks, req.Language)
	if err != nil {
		return nil, err
	}

	body, err := fetchTrack(ctx, track.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("fetching captions: %w", err)
	}

	segments, err := youtube.ParseTimedText(body)
	if err != nil {
		return nil, err
	}

	return &Result{
		Transcript:         youtube.JoinSegments(segments),
		SegmentCount:       len(segments),
		Language:           track.LanguageCode,
		AutoGenerated:      track.AutoGenerated(),
		Source:             source,
		Confidence:         confidence,
		VideoTitle:         pr.VideoDetails.Title,
		AvailableLanguages: youtube.Languages(tracks),
	}, nil
}
