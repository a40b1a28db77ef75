package extractor

import (
	"context"
	"time"
)

// Request identifies one extraction call. Immutable once built.
type Request struct {
	VideoID  string
	Language string
	APIKey   string
}

// Result is a normalized transcript with its retrieval metadata.
type Result struct {
	Transcript         string
	SegmentCount       int
	Language           string
	AutoGenerated      bool
	Source             string
	Confidence         float64
	VideoTitle         string
	AvailableLanguages []string
}

// Attempt records one strategy's outcome for diagnostics. The log lives for
// a single request and is discarded with the response.
type Attempt struct {
	Method    string    `json:"method"`
	Succeeded bool      `json:"succeeded"`
	Detail    string    `json:"detail"`
	Time      time.Time `json:"timestamp"`
}

// Strategy is one self-contained way of obtaining a transcript. Attempt
// returns a plain error for any internal failure (network, parse, missing
// captions); it never panics across the chain boundary.
type Strategy interface {
	// Name returns the unique identifier for this strategy.
	Name() string

	// Available reports whether the strategy is configured for this request.
	Available(req Request) bool

	// Attempt tries to produce a transcript for the request.
	Attempt(ctx context.Context, req Request) (*Result, error)
}
