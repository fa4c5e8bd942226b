// Package model defines the core data types shared by the text2ture job pipeline.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// JobStatus is the client-facing state of a job as observed through the result store.
type JobStatus string

const (
	// JobStatusProcessing means no terminal outcome has been recorded for the UID.
	// A UID that was never submitted is indistinguishable from one that is still running.
	JobStatusProcessing JobStatus = "processing"
	// JobStatusCompleted means a success marker exists for the UID.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusError means an error marker exists for the UID.
	JobStatusError JobStatus = "error"
)

// Valid returns true if the JobStatus is one of the known states.
func (s JobStatus) Valid() bool {
	return s == JobStatusProcessing || s == JobStatusCompleted || s == JobStatusError
}

// MaxUIDLength bounds client-supplied identifiers.
const MaxUIDLength = 128

var (
	// ErrUIDRequired is returned when a UID is empty.
	ErrUIDRequired = errors.New("uid is required")
	// ErrInvalidUID is returned when a UID cannot be used as a result namespace.
	ErrInvalidUID = errors.New("invalid uid")
)

// ValidateUID checks that uid is non-empty and safe to use as a directory name.
// Only ASCII letters, digits, '.', '_' and '-' are accepted; "." and ".." are rejected.
func ValidateUID(uid string) error {
	if uid == "" {
		return ErrUIDRequired
	}
	if len(uid) > MaxUIDLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidUID, MaxUIDLength)
	}
	if uid == "." || uid == ".." {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidUID, uid)
	}
	for _, r := range uid {
		if !isUIDRune(r) {
			return fmt.Errorf("%w: unexpected character %q", ErrInvalidUID, r)
		}
	}
	return nil
}

func isUIDRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	default:
		return false
	}
}

// JobPayload carries the work parameters for a single job.
type JobPayload struct {
	// Text is the transcript to process. Takes precedence over AudioURL.
	Text string `json:"text,omitempty"`
	// AudioURL is transcribed when Text is empty.
	AudioURL string `json:"audio_url,omitempty"`
	// InferenceParams are passed through to the work function untouched.
	InferenceParams map[string]any `json:"inference_params"`
	// CustomArg keys name the objects to generate.
	CustomArg map[string]any `json:"custom_arg"`
}

// HasPrimary reports whether the payload carries text or audio to work on.
func (p JobPayload) HasPrimary() bool {
	return strings.TrimSpace(p.Text) != "" || strings.TrimSpace(p.AudioURL) != ""
}

// JobDescriptor is the unit handed to the executor. It is treated as immutable
// once submitted; the executor never writes back into it.
type JobDescriptor struct {
	UID     string     `json:"uid"`
	Payload JobPayload `json:"payload"`
}

// Validate checks the structurally required fields.
func (d JobDescriptor) Validate() error {
	if err := ValidateUID(d.UID); err != nil {
		return err
	}
	if !d.Payload.HasPrimary() {
		return errors.New("text or audio_url is required")
	}
	return nil
}
