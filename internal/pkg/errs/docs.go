// Package errs provides standardized error types for the ordering application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - ValidationError: For caller-fixable input problems reported with a stable reason
//   - StoreError: For order store failures, classified by kind
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Validation and store errors are never retried automatically. Callers use
// errors.Is against the sentinels (or errors.As against the struct types) to
// decide how to present them: a ValidationError carries the reason to show,
// ErrStoreUnavailable offers a retry, ErrStorePermissionDenied points at
// configuration.
package errs
