package config

import "testing"

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Extraction.MinTranscriptLength != 50 {
		t.Errorf("min transcript length = %d, want 50", cfg.Extraction.MinTranscriptLength)
	}
	if cfg.Extraction.DefaultLanguage != "en" {
		t.Errorf("default language = %q, want en", cfg.Extraction.DefaultLanguage)
	}
	if cfg.Server.Addr == "" {
		t.Error("server addr not set")
	}

	for _, method := range []string{"official", "innertube", "watchpage", "headless", "ytapi", "captionlib"} {
		c, ok := cfg.Extraction.Confidence[method]
		if !ok {
			t.Errorf("no confidence score for %q", method)
			continue
		}
		if c <= 0 || c > 1 {
			t.Errorf("confidence for %q out of range: %v", method, c)
		}
	}

	// Priority order implies monotonically decreasing trust.
	order := []string{"official", "innertube", "watchpage", "headless", "ytapi", "captionlib"}
	for i := 1; i < len(order); i++ {
		if cfg.Extraction.Confidence[order[i]] >= cfg.Extraction.Confidence[order[i-1]] {
			t.Errorf("confidence for %q should be below %q", order[i], order[i-1])
		}
	}
}
