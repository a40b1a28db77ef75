package youtube

import (
	"fmt"
	"regexp"
)

// WatchURL returns the public watch page URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

var (
	videoIDRe  = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	videoURLRe = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|embed/|shorts/|live/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)
)

// ExtractVideoID accepts a bare 11-character video ID or any common YouTube
// URL shape (watch, youtu.be, embed, shorts, live) and returns the ID.
func ExtractVideoID(arg string) (string, error) {
	if videoIDRe.MatchString(arg) {
		return arg, nil
	}
	if m := videoURLRe.FindStringSubmatch(arg); len(m) == 2 {
		return m[1], nil
	}
	return "", fmt.Errorf("not a YouTube video ID or URL: %q", arg)
}
