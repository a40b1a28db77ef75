package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/owlim/ytscribe/internal/fetcher"
)

type staticCookies struct {
	cookies []*http.Cookie
}

func (s *staticCookies) ExtractCookies(context.Context, string) ([]*http.Cookie, error) {
	return s.cookies, nil
}

func TestInnertubeStrategy_Attempt(t *testing.T) {
	var playerCalls int
	var capturedCookie, capturedUA string

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/player", func(w http.ResponseWriter, r *http.Request) {
		playerCalls++
		capturedUA = r.Header.Get("User-Agent")
		if c, err := r.Cookie("SID"); err == nil {
			capturedCookie = c.Value
		}

		body, _ := io.ReadAll(r.Body)
		var req innertubeRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("malformed request body: %v", err)
		}
		if req.VideoID != "dQw4w9WgXcQ" {
			t.Errorf("videoId = %q", req.VideoID)
		}
		if req.Context.Client.ClientName != "ANDROID" {
			t.Errorf("clientName = %q", req.Context.Client.ClientName)
		}

		fmt.Fprintf(w, `{
			"videoDetails": {"videoId": "dQw4w9WgXcQ", "title": "Never Gonna"},
			"captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [
				{"baseUrl": "%s/timedtext?lang=en", "languageCode": "en", "name": {"simpleText": "English"}}
			]}},
			"playabilityStatus": {"status": "OK"}
		}`, server.URL)
	})
	mux.HandleFunc("/timedtext", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testTimedText))
	})

	s := NewInnertubeStrategy(fetcher.New(10*time.Second),
		&staticCookies{cookies: []*http.Cookie{{Name: "SID", Value: "session-1"}}}, 0.9)
	s.PlayerURL = server.URL + "/player"

	result, err := s.Attempt(context.Background(), Request{VideoID: "dQw4w9WgXcQ", Language: "en"})
	if err != nil {
		t.Fatalf("Attempt failed: %v", err)
	}

	if playerCalls != 1 {
		t.Errorf("player called %d times", playerCalls)
	}
	if capturedCookie != "session-1" {
		t.Errorf("browser cookie not forwarded, got %q", capturedCookie)
	}
	if !strings.Contains(capturedUA, "com.google.android.youtube") {
		t.Errorf("android user agent not set: %q", capturedUA)
	}
	if result.VideoTitle != "Never Gonna" {
		t.Errorf("title = %q", result.VideoTitle)
	}
	if result.Language != "en" || result.AutoGenerated {
		t.Errorf("track metadata wrong: %+v", result)
	}
}

func TestInnertubeStrategy_Unplayable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"playabilityStatus": {"status": "UNPLAYABLE", "reason": "Private video"}}`))
	}))
	defer server.Close()

	s := NewInnertubeStrategy(fetcher.New(10*time.Second), nil, 0.9)
	s.PlayerURL = server.URL

	_, err := s.Attempt(context.Background(), Request{VideoID: "abc", Language: "en"})
	if err == nil || !strings.Contains(err.Error(), "unplayable") {
		t.Errorf("expected unplayable error, got %v", err)
	}
}

func TestInnertubeStrategy_NoCaptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"videoDetails": {"videoId": "abc"}, "playabilityStatus": {"status": "OK"}}`))
	}))
	defer server.Close()

	s := NewInnertubeStrategy(fetcher.New(10*time.Second), nil, 0.9)
	s.PlayerURL = server.URL

	_, err := s.Attempt(context.Background(), Request{VideoID: "abc", Language: "en"})
	if err == nil || !strings.Contains(err.Error(), "no captions") {
		t.Errorf("expected no-captions error, got %v", err)
	}
}
