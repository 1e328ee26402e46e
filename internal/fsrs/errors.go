package fsrs

import "errors"

// Sentinel errors for the fsrs package.
var (
	ErrUnknownOutcome = errors.New("fsrs: unknown outcome")
	ErrInvalidParams  = errors.New("fsrs: invalid parameters")
)
