package service

import "errors"

// Failure taxonomy surfaced to the transport layer
var (
	ErrNotFound         = errors.New("not found")          // Amend on a nonexistent ledger id
	ErrInvalidInput     = errors.New("invalid input")      // Empty user id
	ErrStoreUnavailable = errors.New("store unavailable")  // An underlying store call failed
)
