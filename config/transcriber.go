package config

import (
	"strings"
	"time"
)

// DefaultWhisperURL is FAL's hosted Whisper endpoint.
const DefaultWhisperURL = "https://fal.run/fal-ai/whisper"

// TranscriberConfig configures the FAL Whisper client used for audio submissions.
type TranscriberConfig struct {
	// APIKey is the FAL API key. Audio submissions fail when it is empty.
	APIKey string `env:"FAL_KEY"`

	URL     string        `env:"FAL_WHISPER_URL" envDefault:"https://fal.run/fal-ai/whisper"`
	Timeout time.Duration `env:"FAL_TIMEOUT"     envDefault:"60s"`

	// TextPath is a JMESPath expression selecting the transcript from the response body.
	TextPath string `env:"FAL_TEXT_PATH" envDefault:"text"`
}

// Sanitize applies guardrails to transcriber configuration values.
func (t *TranscriberConfig) Sanitize() {
	t.APIKey = strings.TrimSpace(t.APIKey)
	t.URL = strings.TrimSpace(t.URL)
	if t.URL == "" {
		t.URL = DefaultWhisperURL
	}
	if t.Timeout <= 0 {
		t.Timeout = 60 * time.Second
	}
	t.TextPath = strings.TrimSpace(t.TextPath)
	if t.TextPath == "" {
		t.TextPath = "text"
	}
}

// IsConfigured reports whether an API key is available.
func (t *TranscriberConfig) IsConfigured() bool {
	return t.APIKey != ""
}
