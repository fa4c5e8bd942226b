package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError_NilError(t *testing.T) {
	if err := MapDBError(nil); err != nil {
		t.Errorf("MapDBError(nil) = %v, want nil", err)
	}
}

func TestMapDBError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
	}{
		{name: "deadline exceeded", err: context.DeadlineExceeded, wantCode: ErrCodeTimeout},
		{name: "canceled", err: fmt.Errorf("query: %w", context.Canceled), wantCode: ErrCodeCanceled},
		{name: "no rows", err: pgx.ErrNoRows, wantCode: ErrCodeNotFound},
		{
			name:     "undefined table",
			err:      &pgconn.PgError{Code: pgerrcode.UndefinedTable, Message: `relation "job_outcomes" does not exist`},
			wantCode: ErrCodeUnavailable,
		},
		{
			name:     "unique violation",
			err:      &pgconn.PgError{Code: pgerrcode.UniqueViolation, ColumnName: "attempt_id"},
			wantCode: ErrCodeConflict,
		},
		{
			name:     "admin shutdown",
			err:      &pgconn.PgError{Code: pgerrcode.AdminShutdown},
			wantCode: ErrCodeUnavailable,
		},
		{
			name:     "connection failure",
			err:      &pgconn.PgError{Code: pgerrcode.ConnectionFailure},
			wantCode: ErrCodeUnavailable,
		},
		{
			name:     "other pg error",
			err:      &pgconn.PgError{Code: pgerrcode.DivisionByZero},
			wantCode: ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.err)
			if GetCode(err) != tt.wantCode {
				t.Errorf("MapDBError() code = %v, want %v", GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestMapDBError_UniqueViolationField(t *testing.T) {
	err := MapDBError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ColumnName: "attempt_id"})
	if GetField(err) != "attempt_id" {
		t.Errorf("GetField() = %q, want attempt_id", GetField(err))
	}
}

func TestMapDBError_PassThrough(t *testing.T) {
	orig := fmt.Errorf("something else")
	if got := MapDBError(orig); got != orig {
		t.Errorf("MapDBError() = %v, want original error", got)
	}
}
