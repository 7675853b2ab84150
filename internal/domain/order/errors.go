package order

import (
	"github.com/flx/storefront/internal/domain/shared"
)

// Order number allocation errors
var (
	ErrInvalidOrderNumber   = shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number is malformed")
	ErrSequenceOverflow     = shared.NewDomainError("ORDER_NUMBER_SEQUENCE_OVERFLOW", "Daily order number sequence is exhausted")
	ErrCollisionExhausted   = shared.NewDomainError("ORDER_NUMBER_COLLISION_EXHAUSTED", "Could not allocate a free order number")
	ErrDuplicateOrderNumber = shared.NewDomainError("DUPLICATE_ORDER_NUMBER", "Order number already exists")
	ErrTransientStore       = shared.NewDomainError("STORE_UNAVAILABLE", "Order store is temporarily unavailable")

	// ErrCorruptOrderNumber means the store holds a number that does not parse
	// or does not belong to the day that was queried.
	ErrCorruptOrderNumber = shared.NewDomainError("CORRUPT_ORDER_NUMBER", "Stored order number is malformed")
)

// StoreError wraps a failed call to the order store.
// It matches ErrTransientStore and the underlying cause with errors.Is.
type StoreError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return "order store: " + e.Op + ": " + e.Err.Error()
}

// Unwrap exposes both the transient-store classification and the cause
func (e *StoreError) Unwrap() []error {
	return []error{ErrTransientStore, e.Err}
}
