package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err:  &AppError{Code: ErrCodeNotFound, Message: "resource not found"},
			want: "resource not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeInternal,
				Message: "failed to write marker",
				Cause:   errors.New("disk full"),
			},
			want: "failed to write marker: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrCodeInternal, "wrapped error")

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(Wrap(cause)) = false, want true")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
		is   func(error) bool
	}{
		{"not found", NotFound("x"), ErrCodeNotFound, IsNotFound},
		{"validation", Validation("x"), ErrCodeValidation, IsValidation},
		{"validationf", Validationf("bad %s", "uid"), ErrCodeValidation, IsValidation},
		{"unavailable", Unavailable("queue full"), ErrCodeUnavailable, IsUnavailable},
		{"internal", Internal("x"), ErrCodeInternal, IsInternal},
		{"timeout", Wrap(errors.New("slow"), ErrCodeTimeout, "x"), ErrCodeTimeout, IsTimeout},
		{"canceled", Wrap(errors.New("stop"), ErrCodeCanceled, "x"), ErrCodeCanceled, IsCanceled},
		{"conflict", Wrap(errors.New("dup"), ErrCodeConflict, "x"), ErrCodeConflict, IsConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.code)
			}
			if !tt.is(tt.err) {
				t.Errorf("predicate returned false for %v", tt.err)
			}
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if GetCode(wrapped) != tt.code {
				t.Errorf("GetCode(wrapped) = %v, want %v", GetCode(wrapped), tt.code)
			}
		})
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("uid", "uid is required")
	if GetField(err) != "uid" {
		t.Errorf("GetField() = %q, want uid", GetField(err))
	}
	if GetField(errors.New("plain")) != "" {
		t.Error("GetField(plain) should be empty")
	}
	if GetCode(errors.New("plain")) != "" {
		t.Error("GetCode(plain) should be empty")
	}
}

func TestWrap_NilError(t *testing.T) {
	if Wrap(nil, ErrCodeInternal, "x") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, ErrCodeInternal, "x %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
	err := Wrapf(errors.New("boom"), ErrCodeInternal, "write %s", "u1")
	if err.Message != "write u1" {
		t.Errorf("Wrapf message = %q", err.Message)
	}
}
