package rating

import "errors"

// Sentinel kinds for rating errors.
var (
	ErrUnknownOutcome = errors.New("unknown match outcome")
)
