package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors every repository implementation returns, so services never
// see driver error types.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
)

// MapPgError folds constraint violations into the sentinels above, keeping the
// constraint name in the message for the logs:
//
//	unique (duplicate batting slot, replayed client_event_id) -> ErrAlreadyExists
//	foreign key, check, not-null, bad enum literal              -> ErrConflict
//
// Anything else passes through untouched.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	var sentinel error
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		sentinel = ErrAlreadyExists
	case pgerrcode.ForeignKeyViolation,
		pgerrcode.CheckViolation,
		pgerrcode.NotNullViolation,
		pgerrcode.InvalidTextRepresentation:
		sentinel = ErrConflict
	default:
		return err
	}
	if pgErr.ConstraintName != "" {
		return fmt.Errorf("%w: %s", sentinel, pgErr.ConstraintName)
	}
	return sentinel
}
