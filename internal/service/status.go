package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/target/text2ture/internal/core"
	"github.com/target/text2ture/internal/domain/model"
	apperrors "github.com/target/text2ture/internal/errors"
)

// StatusResponse is the client view of a job.
type StatusResponse struct {
	UID    string          `json:"uid"`
	Status model.JobStatus `json:"status"`
	// Result is null unless the job completed with a readable artifact.
	Result      model.Artifact `json:"result"`
	Error       string         `json:"error,omitempty"`
	FileExists  bool           `json:"file_exists"`
	SubmittedAt *time.Time     `json:"submitted_at,omitempty"`
}

// StatusReaderOptions groups dependencies for StatusReader.
type StatusReaderOptions struct {
	Store    core.ResultStore        // Required: outcome source of truth
	Registry core.SubmissionRegistry // Optional: submission time enrichment
	Logger   *slog.Logger            // Optional: structured logger
}

// StatusReader translates result store records into client responses. It keeps
// no state of its own, so status is derived from the store alone.
type StatusReader struct {
	store    core.ResultStore
	registry core.SubmissionRegistry
	logger   *slog.Logger
}

// NewStatusReader constructs a StatusReader.
func NewStatusReader(opts StatusReaderOptions) (*StatusReader, error) {
	if opts.Store == nil {
		return nil, errors.New("ResultStore is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusReader{
		store:    opts.Store,
		registry: opts.Registry,
		logger:   logger.With("component", "status_reader"),
	}, nil
}

// MustNewStatusReader is like NewStatusReader but panics on error.
func MustNewStatusReader(opts StatusReaderOptions) *StatusReader {
	r, err := NewStatusReader(opts)
	if err != nil {
		panic(err)
	}
	return r
}

// Status reports the current state of uid. A UID that was never submitted is
// reported as processing.
func (r *StatusReader) Status(ctx context.Context, uid string) (StatusResponse, error) {
	uid = strings.TrimSpace(uid)
	if err := model.ValidateUID(uid); err != nil {
		return StatusResponse{}, apperrors.ValidationField("uid", err.Error())
	}

	rec, err := r.store.Read(ctx, uid)
	if err != nil {
		if errors.Is(err, model.ErrInvalidUID) || errors.Is(err, model.ErrUIDRequired) {
			return StatusResponse{}, apperrors.ValidationField("uid", err.Error())
		}
		return StatusResponse{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to read job status")
	}
	if !rec.Status.Valid() {
		return StatusResponse{}, apperrors.Internal(fmt.Sprintf("result store reported unknown status %q", rec.Status))
	}

	resp := StatusResponse{
		UID:        uid,
		Status:     rec.Status,
		FileExists: rec.MarkerExists,
	}
	switch rec.Status {
	case model.JobStatusCompleted:
		resp.Result = rec.Result
	case model.JobStatusError:
		resp.Error = rec.Error
	}

	if at, ok := r.submittedAt(ctx, uid); ok {
		resp.SubmittedAt = &at
	}
	return resp, nil
}

func (r *StatusReader) submittedAt(ctx context.Context, uid string) (time.Time, bool) {
	if r.registry == nil {
		return time.Time{}, false
	}
	rctx, cancel := context.WithTimeout(ctx, registryTimeout)
	defer cancel()
	at, ok, err := r.registry.SubmittedAt(rctx, uid)
	if err != nil {
		r.logger.DebugContext(ctx, "submission registry lookup failed", "uid", uid, "error", err)
		return time.Time{}, false
	}
	return at, ok
}
