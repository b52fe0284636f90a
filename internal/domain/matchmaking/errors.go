package matchmaking

import "errors"

// Sentinel kinds for matchmaking errors.
var (
	ErrInsufficientPlayers = errors.New("not enough players")
	ErrUnknownCriterion    = errors.New("unknown pick criterion")
	ErrIndexOutOfRange     = errors.New("pool index out of range")
	ErrSelfMatch           = errors.New("entity cannot play itself")
)
