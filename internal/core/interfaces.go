// Package core holds the ports between the service layer and its adapters.
package core

import (
	"context"
	"io"
	"time"

	"github.com/target/text2ture/internal/domain/model"
)

// ResultStore persists and reports terminal job outcomes keyed by UID.
// Implementations must be safe for concurrent use across distinct and identical UIDs.
type ResultStore interface {
	// WriteSuccess records a success marker holding artifact.
	WriteSuccess(ctx context.Context, uid string, artifact model.Artifact) error
	// WriteFailure records an error marker holding message.
	WriteFailure(ctx context.Context, uid string, message string) error
	// Read reports the status for uid. A UID without markers is processing.
	Read(ctx context.Context, uid string) (model.StatusRecord, error)
}

// ResultFileWriter stores per-job files alongside the markers and returns their public reference.
type ResultFileWriter interface {
	PutFile(ctx context.Context, uid, name string, r io.Reader) (string, error)
}

// SubmissionRegistry remembers when a UID was submitted. It is advisory and never
// influences the reported status.
type SubmissionRegistry interface {
	Register(ctx context.Context, uid string, at time.Time) error
	SubmittedAt(ctx context.Context, uid string) (time.Time, bool, error)
}

// OutcomeJournal keeps an append-only history of job attempts.
type OutcomeJournal interface {
	Append(ctx context.Context, entry model.OutcomeEntry) error
	ListByUID(ctx context.Context, uid string, limit int) ([]model.OutcomeEntry, error)
}

// Transcriber turns an audio URL into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (string, error)
}

// WorkFunc performs one job. It must report failures through the returned Outcome;
// panics are recovered by the executor and recorded as failures.
type WorkFunc func(ctx context.Context, job model.JobDescriptor) model.Outcome

// JobQueue accepts jobs for background execution.
type JobQueue interface {
	Submit(ctx context.Context, job model.JobDescriptor) error
}

// ExecutorStats is a point-in-time view of the worker pool.
type ExecutorStats struct {
	Workers   int   `json:"workers"`
	Capacity  int   `json:"capacity"`
	Queued    int   `json:"queued"`
	InFlight  int   `json:"in_flight"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
	Rejected  int64 `json:"rejected"`
	Running   bool  `json:"running"`
}
