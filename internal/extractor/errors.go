package extractor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInsufficientContent marks a transcript below the minimum viable length.
// Near-empty caption payloads count as failures so the chain keeps going.
var ErrInsufficientContent = errors.New("transcript below minimum length")

// AllFailedError is the only error surfaced to callers: every configured
// strategy failed. The message names each method with its reason.
type AllFailedError struct {
	Attempts []Attempt
}

func (e *AllFailedError) Error() string {
	var sb strings.Builder
	sb.WriteString("all extraction methods failed")
	for _, a := range e.Attempts {
		fmt.Fprintf(&sb, "; %s: %s", a.Method, a.Detail)
	}
	return sb.String()
}
