package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"orderdesk/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const insufficientPrivilege = "42501"

// classify turns a driver failure into a *errs.StoreError. Domain errors
// (not found, invalid values) and errors of unknown origin pass through
// unchanged apart from the operation prefix.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var storeErr *errs.StoreError
	if errors.As(err, &storeErr) {
		return err
	}
	if errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) ||
		errors.Is(err, errs.ErrValidation) {
		return err
	}

	if code, ok := sqlState(err); ok {
		switch {
		case strings.HasPrefix(code, "28"), code == insufficientPrivilege:
			return errs.NewStoreError(op, errs.StorePermissionDenied, err)
		case strings.HasPrefix(code, "08"), strings.HasPrefix(code, "57P0"), code == "53300":
			return errs.NewStoreError(op, errs.StoreUnavailable, err)
		default:
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if isConnectionFailure(err) {
		return errs.NewStoreError(op, errs.StoreUnavailable, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}

func sqlState(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), true
	}

	return "", false
}

func isConnectionFailure(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, gorm.ErrInvalidDB) {
		return true
	}

	if pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
