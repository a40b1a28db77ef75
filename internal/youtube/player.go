package youtube

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoCaptions is returned when a video exists but carries no caption data.
var ErrNoCaptions = errors.New("video has no captions")

// PlayerResponse is the subset of YouTube's player payload we care about,
// shared by the innertube, watch-page and headless strategies.
type PlayerResponse struct {
	VideoDetails struct {
		VideoID string `json:"videoId"`
		Title   string `json:"title"`
	} `json:"videoDetails"`
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []playerCaptionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus struct {
		Status            string `json:"status"`
		Reason            string `json:"reason"`
		LiveStreamability *struct {
			LiveStreamabilityRenderer struct {
				VideoID string `json:"videoId"`
			} `json:"liveStreamabilityRenderer"`
		} `json:"liveStreamability"`
	} `json:"playabilityStatus"`
}

type playerCaptionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
	Name         struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"name"`
}

// ParsePlayerResponse decodes a player payload. Malformed JSON is a parse
// failure; a well-formed payload without captions is ErrNoCaptions.
func ParsePlayerResponse(data []byte) (*PlayerResponse, error) {
	var pr PlayerResponse
	if err := json.Unmarshal(data, &pr); err != nil {
		return nil, fmt.Errorf("malformed player response: %w", err)
	}
	return &pr, nil
}

// CheckPlayability rejects videos the player refuses to serve captions for.
func (pr *PlayerResponse) CheckPlayability() error {
	status := pr.PlayabilityStatus.Status
	switch status {
	case "UNPLAYABLE":
		return fmt.Errorf("video unplayable: %s", pr.PlayabilityStatus.Reason)
	case "LOGIN_REQUIRED":
		if strings.Contains(strings.ToLower(pr.PlayabilityStatus.Reason), "age") {
			return errors.New("video is age-restricted")
		}
		return errors.New("video requires login")
	case "ERROR":
		return fmt.Errorf("player error: %s", pr.PlayabilityStatus.Reason)
	}
	if ls := pr.PlayabilityStatus.LiveStreamability; ls != nil && ls.LiveStreamabilityRenderer.VideoID != "" {
		return errors.New("live streams have no finished captions")
	}
	return nil
}

// Tracks converts the raw caption track list. ErrNoCaptions when the captions
// block is absent or empty.
func (pr *PlayerResponse) Tracks() ([]CaptionTrack, error) {
	if pr.Captions == nil {
		return nil, ErrNoCaptions
	}
	raw := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(raw) == 0 {
		return nil, ErrNoCaptions
	}
	tracks := make([]CaptionTrack, 0, len(raw))
	for _, rt := range raw {
		name := rt.Name.SimpleText
		if name == "" && len(rt.Name.Runs) > 0 {
			name = rt.Name.Runs[0].Text
		}
		tracks = append(tracks, CaptionTrack{
			LanguageCode: rt.LanguageCode,
			Name:         name,
			Kind:         rt.Kind,
			BaseURL:      rt.BaseURL,
		})
	}
	return tracks, nil
}

const playerResponseMarker = "ytInitialPlayerResponse"

// FindPlayerJSON locates the ytInitialPlayerResponse object inside a script
// or page body and returns the balanced JSON slice.
func FindPlayerJSON(s string) (string, bool) {
	idx := strings.Index(s, playerResponseMarker)
	if idx < 0 {
		return "", false
	}
	start := strings.IndexByte(s[idx:], '{')
	if start < 0 {
		return "", false
	}
	start += idx

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
