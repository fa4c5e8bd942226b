package errors

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapDBError maps outcome journal database errors to AppError instances:
//   - pgx.ErrNoRows → NotFound
//   - undefined table → Unavailable (migrations have not run)
//   - unique violation → Conflict
//   - connection failures → Unavailable
//   - context timeouts/cancellations → Timeout/Canceled
//
// Unrecognised errors are returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{Code: ErrCodeTimeout, Message: "database request timed out", Cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{Code: ErrCodeCanceled, Message: "database request was canceled", Cause: err}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &AppError{Code: ErrCodeNotFound, Message: "record not found", Cause: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return &AppError{Code: ErrCodeUnavailable, Message: "database is unreachable", Cause: err}
	}

	return err
}

func mapPgError(pgErr *pgconn.PgError) error {
	switch {
	case pgErr.Code == pgerrcode.UndefinedTable:
		return &AppError{
			Code:    ErrCodeUnavailable,
			Message: "outcome journal is not migrated",
			Cause:   pgErr,
		}
	case pgErr.Code == pgerrcode.UniqueViolation:
		return &AppError{
			Code:    ErrCodeConflict,
			Message: "record already exists",
			Cause:   pgErr,
			Field:   pgErr.ColumnName,
		}
	case pgerrcode.IsConnectionException(pgErr.Code),
		pgerrcode.IsInsufficientResources(pgErr.Code),
		pgErr.Code == pgerrcode.AdminShutdown,
		pgErr.Code == pgerrcode.CannotConnectNow:
		return &AppError{Code: ErrCodeUnavailable, Message: "database is unavailable", Cause: pgErr}
	default:
		return &AppError{Code: ErrCodeInternal, Message: "a database error occurred", Cause: pgErr}
	}
}
