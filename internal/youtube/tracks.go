package youtube

import (
	"errors"
	"strings"
)

// KindASR marks an automatically generated (speech recognition) track.
const KindASR = "asr"

// CaptionTrack is one available subtitle stream for a video.
type CaptionTrack struct {
	LanguageCode string
	Name         string
	Kind         string
	BaseURL      string
}

// AutoGenerated reports whether the track was machine-generated.
func (t CaptionTrack) AutoGenerated() bool {
	return t.Kind == KindASR
}

// ErrNoTracks is returned when a video has no caption tracks at all.
var ErrNoTracks = errors.New("no caption tracks available")

// SelectTrack picks the best track for the requested language:
//
//  1. exact language-code match with no kind marker (human-authored)
//  2. exact language-code match regardless of kind
//  3. any track whose code shares the requested base tag ("en" matches "en-US")
//  4. first track in upstream order
func SelectTrack(tracks []CaptionTrack, lang string) (CaptionTrack, error) {
	if len(tracks) == 0 {
		return CaptionTrack{}, ErrNoTracks
	}

	for _, t := range tracks {
		if t.LanguageCode == lang && t.Kind == "" {
			return t, nil
		}
	}

	for _, t := range tracks {
		if t.LanguageCode == lang {
			return t, nil
		}
	}

	base := strings.SplitN(lang, "-", 2)[0]
	for _, t := range tracks {
		if t.LanguageCode == base || strings.HasPrefix(t.LanguageCode, base+"-") {
			return t, nil
		}
	}

	return tracks[0], nil
}

// Languages returns the distinct language codes in upstream order.
func Languages(tracks []CaptionTrack) []string {
	var langs []string
	seen := make(map[string]bool, len(tracks))
	for _, t := range tracks {
		if !seen[t.LanguageCode] {
			seen[t.LanguageCode] = true
			langs = append(langs, t.LanguageCode)
		}
	}
	return langs
}
