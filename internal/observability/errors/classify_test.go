package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/target/text2ture/internal/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "deadline", err: fmt.Errorf("work: %w", context.DeadlineExceeded), want: "timeout"},
		{name: "canceled", err: context.Canceled, want: "canceled"},
		{name: "app error", err: apperrors.Unavailable("queue full"), want: "unavailable"},
		{name: "path error", err: fmt.Errorf("copy: %w", &fs.PathError{Op: "open", Path: "x", Err: errors.New("boom")}), want: "errors_errorstring"},
		{name: "plain", err: errors.New("plain"), want: "errors_errorstring"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
