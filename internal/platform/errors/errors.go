package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrCapacityExceeded  = errors.New("saved game capacity exceeded")
	ErrRoundsNotSet      = errors.New("rounds per game not configured")
	ErrRoundsExhausted   = errors.New("no rounds left in the current game")
	ErrExit              = errors.New("exit requested")
	ErrStoreUnconfigured = errors.New("session store is not configured")
)
