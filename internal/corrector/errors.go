package corrector

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse indicates the oracle answered with a success status but
// no usable completion content.
var ErrEmptyResponse = errors.New("oracle returned an empty completion")

// ErrInvalidInput indicates a malformed segment sequence was handed to the
// pipeline. This is the only per-run failure the scheduler produces.
var ErrInvalidInput = errors.New("invalid segment sequence")

// TransportError marks a network or HTTP status failure while calling the
// correction oracle.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("oracle transport error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("oracle transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// TimeoutError marks an oracle call that exceeded its deadline.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("oracle call timed out: %v", e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }
