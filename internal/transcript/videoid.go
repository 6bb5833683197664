package transcript

import (
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidVideoID indicates the input could not be reduced to a valid
// YouTube video identifier.
var ErrInvalidVideoID = fmt.Errorf("invalid video ID")

var videoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{5,20}$`)

// ExtractVideoID reduces a YouTube URL (watch, youtu.be, shorts, embed) or a
// bare identifier string to the video ID. Trailing query strings, fragments
// and extra parameters are stripped before validation.
func ExtractVideoID(input string) (string, error) {
	candidate := strings.TrimSpace(input)
	if candidate == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidVideoID)
	}

	markers := []string{"watch?v=", "youtu.be/", "/shorts/", "/embed/"}
	for _, marker := range markers {
		if idx := strings.Index(candidate, marker); idx >= 0 {
			candidate = candidate[idx+len(marker):]
			break
		}
	}

	if idx := strings.IndexAny(candidate, "?#&"); idx >= 0 {
		candidate = candidate[:idx]
	}

	if !videoIDPattern.MatchString(candidate) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVideoID, input)
	}
	return candidate, nil
}
