package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/target/text2ture/internal/core"
	"github.com/target/text2ture/internal/domain/model"
	apperrors "github.com/target/text2ture/internal/errors"
	obserrors "github.com/target/text2ture/internal/observability/errors"
	"github.com/target/text2ture/internal/observability/metrics"
	"github.com/target/text2ture/internal/observability/notify"
	"github.com/target/text2ture/internal/observability/statsd"
)

var (
	// ErrQueueFull is returned by Submit when the pending queue has no room.
	ErrQueueFull = errors.New("job queue is full")
	// ErrExecutorStopped is returned by Submit once shutdown has begun.
	ErrExecutorStopped = errors.New("executor is not accepting jobs")
	// ErrExecutorRunning is returned when Run is called more than once.
	ErrExecutorRunning = errors.New("executor already running")
	// ErrInvalidJob wraps the reason a descriptor was refused before queueing.
	ErrInvalidJob = errors.New("invalid job")
)

const sideChannelTimeout = 5 * time.Second

// FailureNotifier receives failed job outcomes. *failurenotifier.Service satisfies it.
type FailureNotifier interface {
	NotifyJobFailure(ctx context.Context, payload notify.JobFailurePayload)
}

// ExecutorOptions groups dependencies for Executor.
type ExecutorOptions struct {
	Store      core.ResultStore    // Required: where outcomes are recorded
	Work       core.WorkFunc       // Required: the job body
	Workers    int                 // Optional: concurrent jobs (default 4)
	QueueSize  int                 // Optional: pending jobs beyond the workers (default 100)
	JobTimeout time.Duration       // Optional: per-job deadline, 0 disables
	Logger     *slog.Logger        // Optional: structured logger
	Metrics    statsd.Sink         // Optional: lifecycle metrics
	Notifier   FailureNotifier     // Optional: failure fan-out
	Journal    core.OutcomeJournal // Optional: attempt history
	Now        func() time.Time    // Optional: clock override for tests
}

// WorkError is the failure reported by a work function through its Outcome.
type WorkError struct {
	Message string
}

func (e *WorkError) Error() string { return e.Message }

type queuedJob struct {
	job        model.JobDescriptor
	enqueuedAt time.Time
}

// Executor runs submitted jobs on a fixed pool of workers. Submission never
// blocks: when the bounded queue is full the caller gets ErrQueueFull.
// Every dequeued job records exactly one outcome in the result store, even
// when the work function panics or overruns its deadline.
type Executor struct {
	store      core.ResultStore
	work       core.WorkFunc
	workers    int
	queueSize  int
	jobTimeout time.Duration
	logger     *slog.Logger
	metrics    statsd.Sink
	notifier   FailureNotifier
	journal    core.OutcomeJournal
	now        func() time.Time

	queue chan queuedJob

	mu        sync.RWMutex
	accepting bool
	started   bool
	running   atomic.Bool

	inFlight  atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	rejected  atomic.Int64

	sideChannels sync.WaitGroup
}

var _ core.JobQueue = (*Executor)(nil)

// NewExecutor constructs an Executor. Jobs may be submitted before Run is called;
// they wait in the queue until workers start.
func NewExecutor(opts ExecutorOptions) (*Executor, error) {
	if opts.Store == nil {
		return nil, errors.New("ResultStore is required")
	}
	if opts.Work == nil {
		return nil, errors.New("WorkFunc is required")
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	queueSize := opts.QueueSize
	if queueSize <= 0 {
		queueSize = 100
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Executor{
		store:      opts.Store,
		work:       opts.Work,
		workers:    workers,
		queueSize:  queueSize,
		jobTimeout: max(opts.JobTimeout, 0),
		logger:     logger.With("component", "executor"),
		metrics:    opts.Metrics,
		notifier:   opts.Notifier,
		journal:    opts.Journal,
		now:        now,
		queue:      make(chan queuedJob, queueSize),
		accepting:  true,
	}, nil
}

// MustNewExecutor is like NewExecutor but panics on error.
func MustNewExecutor(opts ExecutorOptions) *Executor {
	e, err := NewExecutor(opts)
	if err != nil {
		panic(err)
	}
	return e
}

// Submit enqueues job without blocking.
func (e *Executor) Submit(ctx context.Context, job model.JobDescriptor) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// An unusable UID could never receive a marker and would read as processing forever.
	if err := job.Validate(); err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidJob, err)
		e.reject(ctx, job.UID, err)
		return err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.accepting {
		e.reject(ctx, job.UID, ErrExecutorStopped)
		return ErrExecutorStopped
	}
	select {
	case e.queue <- queuedJob{job: job, enqueuedAt: e.now()}:
	default:
		e.reject(ctx, job.UID, ErrQueueFull)
		return ErrQueueFull
	}

	metrics.EmitJobLifecycle(e.metrics, metrics.JobMetric{Stage: metrics.StageSubmit, Result: metrics.ResultSuccess})
	e.emitGauges()
	e.logger.DebugContext(ctx, "job queued", "uid", job.UID, "queued", len(e.queue))
	return nil
}

func (e *Executor) reject(ctx context.Context, uid string, reason error) {
	e.rejected.Add(1)
	metrics.EmitJobLifecycle(e.metrics, metrics.JobMetric{
		Stage:  metrics.StageSubmit,
		Result: metrics.ResultRejected,
		Err:    reason,
	})
	e.logger.WarnContext(ctx, "job rejected", "uid", uid, "reason", reason.Error())
}

// Run starts the workers and blocks until ctx is cancelled and every accepted
// job has finished. Cancelling ctx stops intake; queued jobs still run.
func (e *Executor) Run(ctx context.Context) error {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return ErrExecutorRunning
	}
	e.started = true
	e.mu.Unlock()

	e.running.Store(true)
	defer e.running.Store(false)

	e.logger.InfoContext(ctx, "starting executor",
		"workers", e.workers,
		"queue_size", e.queueSize,
		"job_timeout", e.jobTimeout,
	)

	// Jobs outlive the run context so a shutdown drains instead of aborting work.
	jobCtx := context.WithoutCancel(ctx)

	var group errgroup.Group
	for range e.workers {
		group.Go(func() error {
			e.workerLoop(jobCtx)
			return nil
		})
	}

	<-ctx.Done()
	e.stopIntake()
	e.logger.InfoContext(jobCtx, "executor draining", "queued", len(e.queue), "in_flight", e.inFlight.Load())

	err := group.Wait()
	e.sideChannels.Wait()
	e.logger.InfoContext(jobCtx, "executor stopped",
		"completed", e.completed.Load(),
		"failed", e.failed.Load(),
	)
	return err
}

func (e *Executor) stopIntake() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.accepting {
		e.accepting = false
		close(e.queue)
	}
}

func (e *Executor) workerLoop(ctx context.Context) {
	for item := range e.queue {
		e.process(ctx, item)
	}
}

// process runs one job attempt and records its outcome.
func (e *Executor) process(ctx context.Context, item queuedJob) {
	job := item.job
	attemptID := uuid.NewString()
	logger := e.logger.With("uid", job.UID, "attempt_id", attemptID)

	e.inFlight.Add(1)
	defer func() {
		e.inFlight.Add(-1)
		e.emitGauges()
	}()

	start := e.now()
	metrics.EmitJobLifecycle(e.metrics, metrics.JobMetric{
		Stage:    metrics.StageStart,
		Result:   metrics.ResultSuccess,
		Duration: start.Sub(item.enqueuedAt),
	})
	logger.InfoContext(ctx, "job started")

	res, pending := e.invoke(ctx, job)
	outcome, cause := e.persist(ctx, job.UID, res.outcome, res.cause, logger)
	elapsed := e.now().Sub(start)

	result := metrics.ResultSuccess
	if outcome.IsSuccess() {
		e.completed.Add(1)
		logger.InfoContext(ctx, "job completed", "duration_ms", elapsed.Milliseconds(), "objects", len(outcome.Artifact()))
	} else {
		result = metrics.ResultError
		e.failed.Add(1)
		logger.WarnContext(ctx, "job failed", "duration_ms", elapsed.Milliseconds(), "error", outcome.Message())
	}
	metrics.EmitJobLifecycle(e.metrics, metrics.JobMetric{
		Stage:    metrics.StageComplete,
		Result:   result,
		Duration: elapsed,
		Err:      cause,
	})

	e.recordSideChannels(ctx, attemptRecord{
		uid:       job.UID,
		attemptID: attemptID,
		outcome:   outcome,
		cause:     cause,
		elapsed:   elapsed,
		at:        e.now(),
	})

	// A timed out body keeps this worker slot until it returns, so no more than
	// Workers bodies ever run at once. Its late outcome is discarded.
	if pending != nil {
		logger.WarnContext(ctx, "waiting for timed out job to return")
		<-pending
		logger.InfoContext(ctx, "timed out job returned")
	}
}

type workResult struct {
	outcome model.Outcome
	cause   error
}

// invoke calls the work function with panic recovery and the optional deadline.
// When the deadline wins, the timeout is returned together with pending, which
// receives once the abandoned work body returns.
func (e *Executor) invoke(ctx context.Context, job model.JobDescriptor) (res workResult, pending <-chan workResult) {
	if e.jobTimeout <= 0 {
		return e.safeWork(ctx, job), nil
	}

	tctx, cancel := context.WithTimeout(ctx, e.jobTimeout)
	done := make(chan workResult, 1)
	go func() {
		defer cancel()
		done <- e.safeWork(tctx, job)
	}()

	select {
	case r := <-done:
		if r.outcome.IsSuccess() && errors.Is(tctx.Err(), context.DeadlineExceeded) {
			return e.timedOut(), nil
		}
		return r, nil
	case <-tctx.Done():
		return e.timedOut(), done
	}
}

func (e *Executor) timedOut() workResult {
	return workResult{
		outcome: model.Failure(fmt.Sprintf("job timed out after %s", e.jobTimeout)),
		cause:   context.DeadlineExceeded,
	}
}

func (e *Executor) safeWork(ctx context.Context, job model.JobDescriptor) (res workResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.ErrorContext(ctx, "job panicked", "uid", job.UID, "panic", r, "stack", string(debug.Stack()))
			res = workResult{
				outcome: model.Failure(fmt.Sprintf("job panicked: %v", r)),
				cause:   apperrors.Internal("job panicked"),
			}
		}
	}()

	outcome := e.work(ctx, job)
	if outcome.IsSuccess() {
		return workResult{outcome: outcome}
	}
	return workResult{outcome: outcome, cause: &WorkError{Message: outcome.Message()}}
}

// persist writes the outcome marker. A failed success write is downgraded to a
// failure so the UID never stays processing forever.
func (e *Executor) persist(
	ctx context.Context,
	uid string,
	outcome model.Outcome,
	cause error,
	logger *slog.Logger,
) (model.Outcome, error) {
	if outcome.IsSuccess() {
		err := e.store.WriteSuccess(ctx, uid, outcome.Artifact())
		if err == nil {
			return outcome, nil
		}
		logger.ErrorContext(ctx, "failed to record success", "error", err)
		metrics.EmitJobLifecycle(e.metrics, metrics.JobMetric{Stage: metrics.StagePersist, Result: metrics.ResultError, Err: err})
		outcome = model.Failure("failed to record result: " + err.Error())
		cause = err
	}

	if err := e.store.WriteFailure(ctx, uid, outcome.Message()); err != nil {
		logger.ErrorContext(ctx, "failed to record failure", "error", err, "job_error", outcome.Message())
		metrics.EmitJobLifecycle(e.metrics, metrics.JobMetric{Stage: metrics.StagePersist, Result: metrics.ResultError, Err: err})
	}
	return outcome, cause
}

type attemptRecord struct {
	uid       string
	attemptID string
	outcome   model.Outcome
	cause     error
	elapsed   time.Duration
	at        time.Time
}

// recordSideChannels appends to the journal and notifies sinks off the worker goroutine.
// Their failures are logged and never change the recorded outcome.
func (e *Executor) recordSideChannels(ctx context.Context, rec attemptRecord) {
	notifyFailure := e.notifier != nil && !rec.outcome.IsSuccess()
	if e.journal == nil && !notifyFailure {
		return
	}

	e.sideChannels.Add(1)
	go func() {
		defer e.sideChannels.Done()
		sctx, cancel := context.WithTimeout(ctx, sideChannelTimeout)
		defer cancel()

		if e.journal != nil {
			entry := model.OutcomeEntry{
				UID:        rec.uid,
				AttemptID:  rec.attemptID,
				Status:     rec.outcome.Status(),
				Artifact:   rec.outcome.Artifact(),
				Error:      rec.outcome.Message(),
				DurationMS: rec.elapsed.Milliseconds(),
				CreatedAt:  rec.at,
			}
			if err := e.journal.Append(sctx, entry); err != nil {
				e.logger.WarnContext(sctx, "outcome journal append failed",
					"uid", rec.uid,
					"attempt_id", rec.attemptID,
					"error", err,
				)
			}
		}

		if notifyFailure {
			e.notifier.NotifyJobFailure(sctx, notify.JobFailurePayload{
				UID:        rec.uid,
				AttemptID:  rec.attemptID,
				Error:      rec.outcome.Message(),
				ErrorClass: obserrors.Classify(rec.cause),
				Duration:   rec.elapsed,
				OccurredAt: rec.at,
			})
		}
	}()
}

func (e *Executor) emitGauges() {
	metrics.EmitExecutorGauges(e.metrics, metrics.ExecutorGauges{
		QueueDepth: len(e.queue),
		InFlight:   int(e.inFlight.Load()),
	})
}

// Stats returns a snapshot of the pool.
func (e *Executor) Stats() core.ExecutorStats {
	return core.ExecutorStats{
		Workers:   e.workers,
		Capacity:  e.queueSize,
		Queued:    len(e.queue),
		InFlight:  int(e.inFlight.Load()),
		Completed: e.completed.Load(),
		Failed:    e.failed.Load(),
		Rejected:  e.rejected.Load(),
		Running:   e.running.Load(),
	}
}
