package server

import "github.com/owlim/ytscribe/internal/extractor"

type extractRequest struct {
	VideoID string `json:"videoId"`
	Lang    string `json:"lang"`
	APIKey  string `json:"apiKey"`
}

type transcriptData struct {
	Transcript         string   `json:"transcript"`
	Language           string   `json:"language"`
	Confidence         float64  `json:"confidence"`
	Source             string   `json:"source"`
	Segments           int      `json:"segments"`
	VideoID            string   `json:"videoId"`
	VideoTitle         string   `json:"videoTitle,omitempty"`
	AvailableLanguages []string `json:"availableLanguages,omitempty"`
}

type successResponse struct {
	Success  bool                `json:"success"`
	Data     transcriptData      `json:"data"`
	Message  string              `json:"message"`
	Attempts []extractor.Attempt `json:"attempts,omitempty"`
}

type failureResponse struct {
	Success  bool                `json:"success"`
	Error    string              `json:"error"`
	Message  string              `json:"message"`
	Hint     string              `json:"hint"`
	Attempts []extractor.Attempt `json:"attempts,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}
