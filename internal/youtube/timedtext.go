package youtube

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"strings"

	xhtml "golang.org/x/net/html"
)

// Segment is one timed span of transcript text, already normalized.
type Segment struct {
	Text     string
	Start    float64
	Duration float64
}

// <transcript><text start="3285.28" dur="4.88">...</text></transcript>
type legacyTimedText struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start    float64 `xml:"start,attr"`
		Duration float64 `xml:"dur,attr"`
		Body     string  `xml:",innerxml"`
	} `xml:"text"`
}

// <timedtext format="3"><body><p t="1360" d="1680">...</p></body></timedtext>
type srv3TimedText struct {
	XMLName xml.Name `xml:"timedtext"`
	Body    struct {
		Paragraphs []struct {
			StartMs    float64 `xml:"t,attr"`
			DurationMs float64 `xml:"d,attr"`
			Body       string  `xml:",innerxml"`
		} `xml:"p"`
	} `xml:"body"`
}

// ParseTimedText decodes a caption payload in either of YouTube's XML shapes
// into ordered segments. Segments that are empty after normalization are
// dropped. An empty payload or one with no usable segments is ErrNoCaptions.
func ParseTimedText(data []byte) ([]Segment, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrNoCaptions
	}

	var segments []Segment
	if bytes.Contains(trimmed, []byte("<timedtext")) {
		var tt srv3TimedText
		if err := decodeXML(trimmed, &tt); err != nil {
			return nil, fmt.Errorf("decoding timedtext: %w", err)
		}
		for _, p := range tt.Body.Paragraphs {
			if text := NormalizeText(p.Body); text != "" {
				segments = append(segments, Segment{
					Text:     text,
					Start:    p.StartMs / 1000,
					Duration: p.DurationMs / 1000,
				})
			}
		}
	} else {
		var tt legacyTimedText
		if err := decodeXML(trimmed, &tt); err != nil {
			return nil, fmt.Errorf("decoding transcript: %w", err)
		}
		for _, t := range tt.Texts {
			if text := NormalizeText(t.Body); text != "" {
				segments = append(segments, Segment{
					Text:     text,
					Start:    t.Start,
					Duration: t.Duration,
				})
			}
		}
	}

	if len(segments) == 0 {
		return nil, ErrNoCaptions
	}
	return segments, nil
}

func decodeXML(data []byte, v any) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = xml.HTMLEntity
	dec.Strict = false
	return dec.Decode(v)
}

// NormalizeText decodes entities, strips embedded markup tags and collapses
// all whitespace to single spaces. Entity-encoded angle brackets survive as
// literal text; only real tag delimiters are removed.
func NormalizeText(raw string) string {
	var b strings.Builder
	tok := xhtml.NewTokenizer(strings.NewReader(raw))
	for {
		tt := tok.Next()
		if tt == xhtml.ErrorToken {
			break
		}
		if tt == xhtml.TextToken {
			b.Write(tok.Text())
		}
	}

	// Upstream payloads are frequently double-escaped.
	text := html.UnescapeString(b.String())
	text = strings.ReplaceAll(text, " ", " ")
	return strings.Join(strings.Fields(text), " ")
}

// JoinSegments produces the final transcript: the space-joined normalized
// segment texts in chronological order.
func JoinSegments(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s.Text != "" {
			parts = append(parts, s.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
