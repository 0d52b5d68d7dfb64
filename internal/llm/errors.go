package llm

import "errors"

var (
	// ErrUnavailable indicates the completion server is unreachable.
	ErrUnavailable = errors.New("completion server unavailable")

	// ErrTimeout indicates the completion request exceeded the configured timeout.
	ErrTimeout = errors.New("completion request timed out")

	// ErrInvalidOutput indicates the completion response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid completion output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("completion retry attempts exhausted")
)
