package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain-level errors I prefer to bubble up from repository implementations.
var (
	// ErrStorageUnavailable covers every failure to open, read or write the store.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrConflict           = errors.New("conflict")
	// ErrOutOfRange is returned when a counter delta or the resulting total does not fit the column.
	ErrOutOfRange         = errors.New("value out of range")
)

// Unavailable wraps a driver error so that it matches both ErrStorageUnavailable and the cause.
// Context cancellation is returned as is; the caller gave up, the store did not fail.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorageUnavailable) || errors.Is(err, ErrConflict) || errors.Is(err, ErrOutOfRange) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}

// MapPgError translates Postgres errors to domain errors.
// Integrity violations become ErrConflict, numeric overflow ErrOutOfRange; everything else is a storage failure.
func MapPgError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgerrcode.IsIntegrityConstraintViolation(pgErr.Code):
			return fmt.Errorf("%s: %w: %s", op, ErrConflict, pgErr.Message)
		case pgErr.Code == pgerrcode.NumericValueOutOfRange:
			return fmt.Errorf("%s: %w: %s", op, ErrOutOfRange, pgErr.Message)
		}
	}
	return Unavailable(op, err)
}
