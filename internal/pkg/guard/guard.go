// Package guard lets value objects and commands reject zero values that
// bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types that must only be built through their
// NewX/RestoreX functions. Its zero value fails validation.
//
// Example:
//
//	type SubmitOrderCommand struct {
//	    cartID uuid.UUID
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c SubmitOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
