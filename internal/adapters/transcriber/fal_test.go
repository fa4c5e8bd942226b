package transcriber

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWhisperServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Key test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req whisperRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://cdn.example.com/clip.wav", req.AudioURL)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFAL_Transcribe(t *testing.T) {
	srv := newWhisperServer(t, http.StatusOK, `{"text":"  a red wooden chair  ","chunks":[]}`)

	fal, err := NewFAL(FALOptions{APIKey: "test-key", URL: srv.URL, Client: srv.Client()})
	require.NoError(t, err)

	text, err := fal.Transcribe(context.Background(), "https://cdn.example.com/clip.wav")
	require.NoError(t, err)
	assert.Equal(t, "a red wooden chair", text)
}

func TestFAL_TranscribeCustomPath(t *testing.T) {
	srv := newWhisperServer(t, http.StatusOK, `{"result":{"segments":[{"text":"first"},{"text":"second"}]}}`)

	fal, err := NewFAL(FALOptions{
		APIKey:   "test-key",
		URL:      srv.URL,
		TextPath: "result.segments[0].text",
		Client:   srv.Client(),
	})
	require.NoError(t, err)

	text, err := fal.Transcribe(context.Background(), "https://cdn.example.com/clip.wav")
	require.NoError(t, err)
	assert.Equal(t, "first", text)
}

func TestFAL_TranscribeErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "upstream error", status: http.StatusUnauthorized, body: `{"detail":"bad key"}`, wantErr: "401"},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantErr: "decode whisper response"},
		{name: "missing text", status: http.StatusOK, body: `{"chunks":[]}`, wantErr: "did not select a string"},
		{name: "empty text", status: http.StatusOK, body: `{"text":"   "}`, wantErr: "empty transcript"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newWhisperServer(t, tt.status, tt.body)
			fal, err := NewFAL(FALOptions{APIKey: "test-key", URL: srv.URL, Client: srv.Client()})
			require.NoError(t, err)

			_, err = fal.Transcribe(context.Background(), "https://cdn.example.com/clip.wav")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFAL_NotConfigured(t *testing.T) {
	fal, err := NewFAL(FALOptions{URL: "https://fal.run/fal-ai/whisper"})
	require.NoError(t, err)
	assert.False(t, fal.Configured())

	_, err = fal.Transcribe(context.Background(), "https://cdn.example.com/clip.wav")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewFAL_Validation(t *testing.T) {
	_, err := NewFAL(FALOptions{URL: "https://fal.run/fal-ai/whisper", TextPath: "text[?"})
	assert.Error(t, err)

	_, err = NewFAL(FALOptions{})
	assert.Error(t, err)
}

func TestFAL_TranscribeRequiresURL(t *testing.T) {
	fal, err := NewFAL(FALOptions{APIKey: "k", URL: "http://127.0.0.1:1"})
	require.NoError(t, err)
	_, err = fal.Transcribe(context.Background(), " ")
	assert.Error(t, err)
}
