package errs

import (
	"errors"
	"fmt"
)

var (
	ErrStoreUnavailable      = errors.New("order store unavailable")
	ErrStorePermissionDenied = errors.New("order store permission denied")
	ErrStream                = errors.New("order stream degraded")
)

// StoreKind classifies order store failures.
type StoreKind string

const (
	StoreUnavailable      StoreKind = "unavailable"
	StorePermissionDenied StoreKind = "permission-denied"
	StoreStream           StoreKind = "stream"
)

// StoreError wraps a backend failure with the operation that hit it.
// Unwrap yields the sentinel for Kind so errors.Is works against it.
type StoreError struct {
	Op    string
	Kind  StoreKind
	Cause error
}

func NewStoreError(op string, kind StoreKind, cause error) *StoreError {
	return &StoreError{Op: op, Kind: kind, Cause: cause}
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.sentinel(), e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.sentinel(), e.Op)
}

func (e *StoreError) Unwrap() error {
	return e.sentinel()
}

// Retryable reports whether the user may simply try again.
func (e *StoreError) Retryable() bool {
	return e.Kind == StoreUnavailable
}

func (e *StoreError) sentinel() error {
	switch e.Kind {
	case StorePermissionDenied:
		return ErrStorePermissionDenied
	case StoreStream:
		return ErrStream
	default:
		return ErrStoreUnavailable
	}
}
