package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/owlim/ytscribe/internal/fetcher"
	"github.com/owlim/ytscribe/internal/youtube"
)

// OfficialStrategy lists caption tracks through the YouTube Data API v3 and
// downloads the selected track from the public timedtext endpoint. Requires
// an API key; skipped when the request carries none.
type OfficialStrategy struct {
	Confidence       float64
	APIBaseURL       string // overridable for testing
	TimedTextBaseURL string // overridable for testing

	fetcher *fetcher.Fetcher
}

func NewOfficialStrategy(f *fetcher.Fetcher, confidence float64) *OfficialStrategy {
	return &OfficialStrategy{
		Confidence:       confidence,
		APIBaseURL:       "https://www.googleapis.com/youtube/v3",
		TimedTextBaseURL: "https://www.youtube.com/api/timedtext",
		fetcher:          f,
	}
}

func (s *OfficialStrategy) Name() string { return "official" }

func (s *OfficialStrategy) Available(req Request) bool { return req.APIKey != "" }

type captionsListResp struct {
	Items []struct {
		Snippet struct {
			Language  string `json:"language"`
			TrackKind string `json:"trackKind"`
			Name      string `json:"name"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosListResp struct {
	Items []struct {
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

func (s *OfficialStrategy) Attempt(ctx context.Context, req Request) (*Result, error) {
	tracks, err := s.listTracks(ctx, req)
	if err != nil {
		return nil, err
	}

	track, err := youtube.SelectTrack(tracks, req.Language)
	if err != nil {
		return nil, err
	}

	body, err := s.fetcher.Get(ctx, track.BaseURL, fetcher.FetchOptions{})
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
		Source:             s.Name(),
		Confidence:         s.Confidence,
		VideoTitle:         s.videoTitle(ctx, req),
		AvailableLanguages: youtube.Languages(tracks),
	}, nil
}

func (s *OfficialStrategy) listTracks(ctx context.Context, req Request) ([]youtube.CaptionTrack, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", req.VideoID)
	params.Set("key", req.APIKey)

	body, err := s.fetcher.Get(ctx, s.APIBaseURL+"/captions?"+params.Encode(), fetcher.FetchOptions{})
	if err != nil {
		return nil, fmt.Errorf("captions.list: %w", err)
	}

	var resp captionsListResp
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("captions.list: malformed response: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, youtube.ErrNoCaptions
	}

	tracks := make([]youtube.CaptionTrack, 0, len(resp.Items))
	for _, item := range resp.Items {
		kind := ""
		if strings.EqualFold(item.Snippet.TrackKind, youtube.KindASR) {
			kind = youtube.KindASR
		}
		tracks = append(tracks, youtube.CaptionTrack{
			LanguageCode: item.Snippet.Language,
			Name:         item.Snippet.Name,
			Kind:         kind,
			BaseURL:      s.timedTextURL(req.VideoID, item.Snippet.Language, kind),
		})
	}
	return tracks, nil
}

// Caption bodies are not downloadable with a plain API key (that needs
// OAuth), so tracks listed by the API are fetched from timedtext instead.
func (s *OfficialStrategy) timedTextURL(videoID, lang, kind string) string {
	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", lang)
	if kind != "" {
		params.Set("kind", kind)
	}
	return s.TimedTextBaseURL + "?" + params.Encode()
}

// videoTitle is best-effort; a failed videos.list never fails the attempt.
func (s *OfficialStrategy) videoTitle(ctx context.Context, req Request) string {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", req.VideoID)
	params.Set("key", req.APIKey)

	body, err := s.fetcher.Get(ctx, s.APIBaseURL+"/videos?"+params.Encode(), fetcher.FetchOptions{})
	if err != nil {
		return ""
	}
	var resp videosListResp
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Items) == 0 {
		return ""
	}
	return resp.Items[0].Snippet.Title
}
