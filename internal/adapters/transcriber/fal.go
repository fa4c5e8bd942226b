// Package transcriber implements speech-to-text through FAL's hosted Whisper endpoint.
package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/target/text2ture/internal/core"
)

// maxResponseBytes caps how much of a Whisper response is read.
const maxResponseBytes = 8 << 20

// ErrNotConfigured is returned when audio must be transcribed but no API key is set.
var ErrNotConfigured = errors.New("FAL_KEY is not configured")

// FALOptions configures the FAL Whisper client.
type FALOptions struct {
	APIKey  string
	URL     string
	Timeout time.Duration
	// TextPath is a JMESPath expression selecting the transcript. Defaults to "text".
	TextPath string
	Client   *http.Client
	Logger   *slog.Logger
}

// FAL calls the Whisper endpoint and extracts the transcript from its JSON response.
type FAL struct {
	apiKey   string
	url      string
	textPath string
	expr     jmespath.JMESPath
	client   *http.Client
	logger   *slog.Logger
}

var _ core.Transcriber = (*FAL)(nil)

// NewFAL validates the text path and builds the client. An empty API key is
// accepted; Transcribe then fails with ErrNotConfigured.
func NewFAL(opts FALOptions) (*FAL, error) {
	textPath := strings.TrimSpace(opts.TextPath)
	if textPath == "" {
		textPath = "text"
	}
	expr, err := jmespath.Compile(textPath)
	if err != nil {
		return nil, fmt.Errorf("compile transcript path %q: %w", textPath, err)
	}
	if strings.TrimSpace(opts.URL) == "" {
		return nil, errors.New("whisper url is required")
	}

	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &FAL{
		apiKey:   strings.TrimSpace(opts.APIKey),
		url:      strings.TrimSpace(opts.URL),
		textPath: textPath,
		expr:     expr,
		client:   client,
		logger:   logger.With("component", "fal_transcriber"),
	}, nil
}

// Configured reports whether an API key is present.
func (f *FAL) Configured() bool { return f != nil && f.apiKey != "" }

type whisperRequest struct {
	AudioURL string `json:"audio_url"`
}

// Transcribe sends audioURL to Whisper and returns the trimmed transcript.
func (f *FAL) Transcribe(ctx context.Context, audioURL string) (string, error) {
	if !f.Configured() {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(audioURL) == "" {
		return "", errors.New("audio url is required")
	}

	body, err := json.Marshal(whisperRequest{AudioURL: audioURL})
	if err != nil {
		return "", fmt.Errorf("encode whisper request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create whisper request: %w", err)
	}
	req.Header.Set("Authorization", "Key "+f.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("whisper request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read whisper response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("whisper returned %s: %s", resp.Status, truncate(strings.TrimSpace(string(raw)), 512))
	}

	text, err := f.extract(raw)
	if err != nil {
		return "", err
	}
	f.logger.DebugContext(ctx, "transcription completed",
		"duration_ms", time.Since(start).Milliseconds(),
		"chars", len(text),
	)
	return text, nil
}

func (f *FAL) extract(raw []byte) (string, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("decode whisper response: %w", err)
	}
	value, err := f.expr.Search(doc)
	if err != nil {
		return "", fmt.Errorf("evaluate transcript path %q: %w", f.textPath, err)
	}
	text, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("transcript path %q did not select a string", f.textPath)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("whisper returned an empty transcript")
	}
	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
