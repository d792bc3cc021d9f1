package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned when no usable provider or caller identity is available
	ErrNotConnected = errors.New("not connected")

	// ErrChainMismatch is returned when the provider serves a different chain than configured
	ErrChainMismatch = errors.New("chain mismatch")

	// ErrItemNotFound is returned when a token is not part of any marketplace read
	ErrItemNotFound = errors.New("item not found")

	// ErrNotEligible is returned when the caller may not perform an action on an item
	ErrNotEligible = errors.New("action not allowed for caller")

	// ErrMetadataUnavailable is returned when a token's metadata cannot be resolved
	ErrMetadataUnavailable = errors.New("metadata unavailable")

	// ErrInvalidAmount is returned when an amount string cannot be parsed
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrCallReverted is the sentinel every RevertError unwraps to
	ErrCallReverted = errors.New("call reverted")

	// ErrSignerRequired is returned when a write is attempted on a read-only session
	ErrSignerRequired = errors.New("signer required")
)

// RevertError carries the ledger's rejection reason verbatim
type RevertError struct {
	Method string
	Reason string
}

func (e *RevertError) Error() string {
	return fmt.Sprintf("%s reverted: %s", e.Method, e.Reason)
}

func (e *RevertError) Unwrap() error {
	return ErrCallReverted
}
