package transcript

// Segment is one timed unit of transcript text. Offset and Duration are
// expressed in milliseconds, matching the transcript source output.
type Segment struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
	Offset   float64 `json:"offset"`
}
