package core

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTitle      = errors.New("title is required")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrEmptyCategory   = errors.New("category is required")
	ErrUnknownCategory = errors.New("unknown category")
	ErrMissingDate     = errors.New("date is required")
	ErrInvalidCurrency = errors.New("unknown currency code")
	ErrInvalidTheme    = errors.New("unknown theme")

	// ErrNotFound is returned by update operations targeting an id that is
	// not in the collection. Remove is idempotent and never returns it.
	ErrNotFound = errors.New("expense not found")
)

// ValidationError reports a rejected draft or patch together with the field
// that failed. The collection is never mutated when one is returned.
type ValidationError struct {
	Field  string
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Reason }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PersistenceError wraps a failure from the persistence gateway. In-memory
// state stays at its pre-call value when one is returned (persist-then-apply).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsPersistence reports whether err is (or wraps) a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
