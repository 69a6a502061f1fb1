package domain

import "errors"

// Errors returned while reading and classifying input. All of them are fatal for the run.
var (
	// ErrMalformedInput means the payload is not valid JSON or not an array.
	ErrMalformedInput = errors.New("malformed input")
	// ErrMissingField means an issue lacks one of labels, title, created_at or updated_at.
	ErrMissingField = errors.New("missing field")
	// ErrUnparsableTimestamp means a timestamp is not ISO-8601 with a UTC offset.
	ErrUnparsableTimestamp = errors.New("unparsable timestamp")
)
