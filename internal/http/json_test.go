package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/target/text2ture/internal/errors"
)

func TestWriteAppError_StatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperrors.Validation("bad"), http.StatusBadRequest},
		{apperrors.NotFound("missing"), http.StatusNotFound},
		{apperrors.Unavailable("busy"), http.StatusServiceUnavailable},
		{apperrors.Internal("oops"), http.StatusInternalServerError},
		{apperrors.Wrap(context.DeadlineExceeded, apperrors.ErrCodeTimeout, "slow"), http.StatusGatewayTimeout},
		{apperrors.Wrap(context.Canceled, apperrors.ErrCodeCanceled, "gone"), statusClientClosedRequest},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		WriteAppError(rec, tt.err)
		assert.Equal(t, tt.want, rec.Code, tt.err.Error())
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}

func TestWriteError_IncludesField(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteAppError(rec, apperrors.ValidationField("uid", "uid is required"))
	assert.JSONEq(t, `{"error":"validation","message":"uid is required","field":"uid"}`, rec.Body.String())
}
