package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/owlim/ytscribe/internal/extractor"
	"github.com/owlim/ytscribe/pkg/transcript"
)

type stubExtractor struct {
	result   *extractor.Result
	attempts []extractor.Attempt
	err      error
	calls    int
	lastArg  string
	lastOpts transcript.Options
}

func (s *stubExtractor) Extract(_ context.Context, videoArg string, opts transcript.Options) (*extractor.Result, []extractor.Attempt, error) {
	s.calls++
	s.lastArg = videoArg
	s.lastOpts = opts
	return s.result, s.attempts, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestTranscript_MissingVideoID(t *testing.T) {
	stub := &stubExtractor{}
	srv := New(stub, testLogger())

	for _, body := range []string{`{}`, `{"lang": "en"}`, `not json`, ``} {
		rec := doRequest(t, srv, http.MethodPost, "/transcript", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("body %q: %v", body, err)
		}
		if resp.Error != "Missing required parameter: videoId" {
			t.Errorf("body %q: error = %q", body, resp.Error)
		}
	}
	if stub.calls != 0 {
		t.Errorf("extractor invoked %d times for invalid requests", stub.calls)
	}
}

func TestTranscript_MethodNotAllowed(t *testing.T) {
	srv := New(&stubExtractor{}, testLogger())

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := doRequest(t, srv, method, "/transcript", "")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: status = %d, want 405", method, rec.Code)
		}
		var resp errorResponse
		json.Unmarshal(rec.Body.Bytes(), &resp)
		if resp.Error != "Method not allowed. Use POST." {
			t.Errorf("%s: error = %q", method, resp.Error)
		}
	}
}

func TestTranscript_Options(t *testing.T) {
	srv := New(&stubExtractor{}, testLogger())

	rec := doRequest(t, srv, http.MethodOptions, "/transcript", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "POST") {
		t.Errorf("Allow-Methods = %q", got)
	}
}

func TestTranscript_CORSOnEveryResponse(t *testing.T) {
	srv := New(&stubExtractor{err: errors.New("boom")}, testLogger())

	for _, method := range []string{http.MethodOptions, http.MethodPost, http.MethodGet} {
		rec := doRequest(t, srv, method, "/transcript", `{"videoId": "abc"}`)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("%s: Allow-Origin = %q, want *", method, got)
		}
	}
}

func TestTranscript_Success(t *testing.T) {
	stub := &stubExtractor{
		result: &extractor.Result{
			Transcript:         "a perfectly reasonable transcript of the requested video content",
			SegmentCount:       9,
			Language:           "en",
			Source:             "watchpage",
			Confidence:         0.8,
			VideoTitle:         "A Video",
			AvailableLanguages: []string{"en", "fr"},
		},
		attempts: []extractor.Attempt{
			{Method: "official", Detail: "not configured"},
			{Method: "innertube", Detail: "HTTP error: 403"},
			{Method: "watchpage", Succeeded: true, Detail: "9 segments, language en"},
		},
	}
	srv := New(stub, testLogger())

	rec := doRequest(t, srv, http.MethodPost, "/transcript", `{"videoId": "dQw4w9WgXcQ", "lang": "fr", "apiKey": "k"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	if stub.lastArg != "dQw4w9WgXcQ" {
		t.Errorf("video arg = %q", stub.lastArg)
	}
	if stub.lastOpts.Language != "fr" || stub.lastOpts.APIKey != "k" {
		t.Errorf("options not forwarded: %+v", stub.lastOpts)
	}

	var resp successResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Error("success = false")
	}
	if resp.Data.Source != "watchpage" || resp.Data.Segments != 9 || resp.Data.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("data = %+v", resp.Data)
	}
	if len(resp.Attempts) != 3 {
		t.Errorf("attempts = %d, want 3", len(resp.Attempts))
	}

	var raw struct {
		Attempts []map[string]json.RawMessage `json:"attempts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	for i, attempt := range raw.Attempts {
		if _, ok := attempt["timestamp"]; !ok {
			t.Errorf("attempt %d missing timestamp field: %v", i, attempt)
		}
	}
}

func TestTranscript_AllMethodsFailed(t *testing.T) {
	attempts := []extractor.Attempt{
		{Method: "innertube", Detail: "network down"},
		{Method: "watchpage", Detail: "no captions"},
	}
	stub := &stubExtractor{
		attempts: attempts,
		err:      &extractor.AllFailedError{Attempts: attempts},
	}
	srv := New(stub, testLogger())

	rec := doRequest(t, srv, http.MethodPost, "/transcript", `{"videoId": "abc"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var resp failureResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success {
		t.Error("success = true on failure")
	}
	if resp.Message != "Transcript extraction failed" {
		t.Errorf("message = %q", resp.Message)
	}
	if !strings.Contains(resp.Hint, "captions") {
		t.Errorf("hint = %q", resp.Hint)
	}
	for _, want := range []string{"innertube", "network down", "watchpage", "no captions"} {
		if !strings.Contains(resp.Error, want) {
			t.Errorf("error missing %q: %s", want, resp.Error)
		}
	}
	if len(resp.Attempts) != 2 {
		t.Errorf("attempts = %d, want 2", len(resp.Attempts))
	}
}

func TestTranscript_BackupEndpointEquivalent(t *testing.T) {
	stub := &stubExtractor{
		result: &extractor.Result{
			Transcript: "another perfectly reasonable transcript of reasonable length",
			Source:     "innertube",
		},
	}
	srv := New(stub, testLogger())

	for _, path := range []string{"/transcript", "/transcript/backup"} {
		rec := doRequest(t, srv, http.MethodPost, path, `{"videoId": "abc"}`)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, rec.Code)
		}
	}
	if stub.calls != 2 {
		t.Errorf("extractor calls = %d, want 2", stub.calls)
	}
}

func TestHealthz(t *testing.T) {
	srv := New(&stubExtractor{}, testLogger())
	rec := doRequest(t, srv, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
