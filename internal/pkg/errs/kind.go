package errs

import "errors"

// Kind is a coarse classification of an error for metrics labels and API
// responses.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindNotFound         Kind = "not-found"
	KindUnavailable      Kind = "unavailable"
	KindPermissionDenied Kind = "permission-denied"
	KindInvalid          Kind = "invalid"
	KindInternal         Kind = "internal"
)

// KindOf classifies err. Store failures are checked before input errors so a
// wrapped outage is never reported as a user mistake.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrStorePermissionDenied):
		return KindPermissionDenied
	case errors.Is(err, ErrStoreUnavailable), errors.Is(err, ErrStream):
		return KindUnavailable
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrValueIsInvalid), errors.Is(err, ErrValueIsRequired), errors.Is(err, ErrValueIsOutOfRange):
		return KindInvalid
	default:
		return KindInternal
	}
}
