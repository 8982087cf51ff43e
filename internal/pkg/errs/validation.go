package errs

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel behind every ValidationError.
var ErrValidation = errors.New("validation failed")

// Reason identifies a caller-fixable input problem. Reasons are stable strings
// so they can be shown to staff and returned over the API unchanged.
type Reason string

const (
	ReasonCondimentRequired      Reason = "condiment-required"
	ReasonCondimentLimitExceeded Reason = "condiment-limit-exceeded"
	ReasonMissingOrderNumber     Reason = "missing-order-number"
	ReasonOrderNumberTooLong     Reason = "order-number-too-long"
	ReasonEmptyCart              Reason = "empty-cart"
	ReasonTerminalState          Reason = "terminal-state"
	ReasonUnknownItem            Reason = "unknown-item"
	ReasonUnknownCondiment       Reason = "unknown-condiment"
	ReasonNoPendingSelection     Reason = "no-pending-selection"
)

// ValidationError reports a local input problem. It is never retried.
type ValidationError struct {
	Reason Reason
	Cause  error
}

func NewValidationError(reason Reason) *ValidationError {
	return &ValidationError{Reason: reason}
}

func NewValidationErrorWithCause(reason Reason, cause error) *ValidationError {
	return &ValidationError{Reason: reason, Cause: cause}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValidation, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// HasReason reports whether err is a ValidationError with the given reason.
func HasReason(err error, reason Reason) bool {
	var v *ValidationError
	return errors.As(err, &v) && v.Reason == reason
}
