package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/target/text2ture/internal/core"
	"github.com/target/text2ture/internal/domain/model"
	apperrors "github.com/target/text2ture/internal/errors"
)

// registryTimeout bounds each submission registry round trip on the request path.
const registryTimeout = 250 * time.Millisecond

// SubmitRequest is the client payload for a new job. InferenceParams and CustomArg
// may hold either a JSON object or a string containing a JSON object.
type SubmitRequest struct {
	UID             string          `json:"uid"`
	Text            string          `json:"text,omitempty"`
	AudioURL        string          `json:"audio_url,omitempty"`
	InferenceParams json.RawMessage `json:"inference_params,omitempty"`
	CustomArg       json.RawMessage `json:"custom_arg,omitempty"`
}

// SubmitResponse acknowledges an accepted job. Status is always processing.
type SubmitResponse struct {
	UID             string          `json:"uid"`
	Status          model.JobStatus `json:"status"`
	Text            string          `json:"text,omitempty"`
	AudioURL        string          `json:"audio_url,omitempty"`
	InferenceParams map[string]any  `json:"inference_params"`
	CustomArg       map[string]any  `json:"custom_arg"`
}

// SubmitterOptions groups dependencies for Submitter.
type SubmitterOptions struct {
	Queue    core.JobQueue           // Required: executor intake
	Registry core.SubmissionRegistry // Optional: records submission times
	Logger   *slog.Logger            // Optional: structured logger
	Now      func() time.Time        // Optional: clock override for tests
}

// Submitter validates client requests and hands them to the executor.
type Submitter struct {
	queue    core.JobQueue
	registry core.SubmissionRegistry
	logger   *slog.Logger
	now      func() time.Time
}

// NewSubmitter constructs a Submitter.
func NewSubmitter(opts SubmitterOptions) (*Submitter, error) {
	if opts.Queue == nil {
		return nil, errors.New("JobQueue is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Submitter{
		queue:    opts.Queue,
		registry: opts.Registry,
		logger:   logger.With("component", "submitter"),
		now:      now,
	}, nil
}

// MustNewSubmitter is like NewSubmitter but panics on error.
func MustNewSubmitter(opts SubmitterOptions) *Submitter {
	s, err := NewSubmitter(opts)
	if err != nil {
		panic(err)
	}
	return s
}

// Submit schedules the job and returns without waiting for it. Validation failures
// and a saturated executor are reported as AppErrors; nothing is scheduled in
// either case.
func (s *Submitter) Submit(ctx context.Context, req SubmitRequest) (SubmitResponse, error) {
	uid := strings.TrimSpace(req.UID)
	if err := model.ValidateUID(uid); err != nil {
		return SubmitResponse{}, apperrors.ValidationField("uid", err.Error())
	}

	payload := model.JobPayload{
		Text:            strings.TrimSpace(req.Text),
		AudioURL:        strings.TrimSpace(req.AudioURL),
		InferenceParams: s.decodeParams(ctx, uid, "inference_params", req.InferenceParams),
		CustomArg:       s.decodeParams(ctx, uid, "custom_arg", req.CustomArg),
	}
	if !payload.HasPrimary() {
		return SubmitResponse{}, apperrors.ValidationField("text", "text or audio_url is required")
	}

	job := model.JobDescriptor{UID: uid, Payload: payload}
	if err := s.queue.Submit(ctx, job); err != nil {
		return SubmitResponse{}, s.mapQueueError(err)
	}

	s.register(ctx, uid)
	s.logger.InfoContext(ctx, "job submitted",
		"uid", uid,
		"has_audio", payload.AudioURL != "",
		"objects", len(payload.CustomArg),
	)

	return SubmitResponse{
		UID:             uid,
		Status:          model.JobStatusProcessing,
		Text:            payload.Text,
		AudioURL:        payload.AudioURL,
		InferenceParams: payload.InferenceParams,
		CustomArg:       payload.CustomArg,
	}, nil
}

func (s *Submitter) mapQueueError(err error) error {
	switch {
	case errors.Is(err, ErrQueueFull):
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "cannot accept job, retry later")
	case errors.Is(err, ErrExecutorStopped):
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "service is shutting down")
	case errors.Is(err, ErrInvalidJob):
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	case errors.Is(err, context.Canceled):
		return apperrors.Wrap(err, apperrors.ErrCodeCanceled, "submission canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "submission timed out")
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to schedule job")
	}
}

func (s *Submitter) register(ctx context.Context, uid string) {
	if s.registry == nil {
		return
	}
	rctx, cancel := context.WithTimeout(ctx, registryTimeout)
	defer cancel()
	if err := s.registry.Register(rctx, uid, s.now().UTC()); err != nil {
		s.logger.WarnContext(ctx, "submission registry write failed", "uid", uid, "error", err)
	}
}

// decodeParams parses an optional structured parameter. Malformed input never
// rejects the job: it is logged and replaced with an empty map.
func (s *Submitter) decodeParams(ctx context.Context, uid, field string, raw json.RawMessage) map[string]any {
	out, err := parseParams(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "ignoring malformed parameter",
			"uid", uid,
			"field", field,
			"error", err,
		)
		return map[string]any{}
	}
	return out
}

func parseParams(raw json.RawMessage) (map[string]any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return map[string]any{}, nil
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, err
		}
		return parseParams(json.RawMessage(inner))
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}
