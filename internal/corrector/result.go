package corrector

import (
	"strings"

	"captionfix/internal/transcript"
)

// Result is a transcript segment annotated with the outcome of its
// correction. When HasError is true the segment text was changed: Original
// and Corrected echo the pre/post correction texts untrimmed and Text holds
// the corrected version. When false the segment is unchanged and
// Original/Corrected stay empty.
type Result struct {
	transcript.Segment
	Original  string `json:"original,omitempty"`
	Corrected string `json:"corrected,omitempty"`
	HasError  bool   `json:"hasError"`
}

// annotate compares a segment's original text against the corrected text.
// The comparison trims leading/trailing whitespace on both sides only;
// internal whitespace differences and case differences count as a change.
func annotate(seg transcript.Segment, corrected string) Result {
	result := Result{Segment: seg}
	if strings.TrimSpace(seg.Text) == strings.TrimSpace(corrected) {
		return result
	}
	result.Original = seg.Text
	result.Corrected = corrected
	result.Text = corrected
	result.HasError = true
	return result
}
