// Package failurenotifier fans job failure events out to the configured notification sinks.
package failurenotifier

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/target/text2ture/internal/observability/notify"
)

// SinkRegistration pairs a sink implementation with a human-readable name for logging.
type SinkRegistration struct {
	Name string
	Sink notify.Sink
}

// Options configures the failure notifier service.
type Options struct {
	Logger *slog.Logger
	Sinks  []SinkRegistration
	// DeliveryTimeout bounds each sink call. Zero means no extra bound.
	DeliveryTimeout time.Duration
}

// Service dispatches failure events to all registered sinks.
type Service struct {
	logger  *slog.Logger
	sinks   []SinkRegistration
	timeout time.Duration
}

// NewService constructs a failure notifier.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var sinks []SinkRegistration
	for _, entry := range opts.Sinks {
		if entry.Sink == nil {
			continue
		}
		if entry.Name == "" {
			entry.Name = "sink"
		}
		sinks = append(sinks, entry)
	}

	return &Service{
		logger:  logger.With("component", "failure_notifier"),
		sinks:   sinks,
		timeout: opts.DeliveryTimeout,
	}
}

// NotifyJobFailure fans the payload out to all sinks and waits for every delivery.
// Failures caused by executor shutdown are not reported.
func (s *Service) NotifyJobFailure(ctx context.Context, payload notify.JobFailurePayload) {
	if s == nil || len(s.sinks) == 0 {
		return
	}
	if payload.ErrorClass == "canceled" {
		s.logger.DebugContext(ctx, "skipping notification for canceled job", "uid", payload.UID)
		return
	}

	if payload.Severity == "" {
		payload.Severity = notify.SeverityCritical
		if payload.ErrorClass == "timeout" {
			payload.Severity = notify.SeverityWarning
		}
	}
	if payload.OccurredAt.IsZero() {
		payload.OccurredAt = time.Now().UTC()
	}

	var wg sync.WaitGroup
	for _, entry := range s.sinks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sendCtx := ctx
			if s.timeout > 0 {
				var cancel context.CancelFunc
				sendCtx, cancel = context.WithTimeout(ctx, s.timeout)
				defer cancel()
			}
			if err := entry.Sink.SendJobFailure(sendCtx, payload); err != nil {
				s.logger.ErrorContext(ctx, "failure notifier delivery error",
					"sink", entry.Name,
					"uid", payload.UID,
					"attempt_id", payload.AttemptID,
					"error", err,
				)
			}
		}()
	}
	wg.Wait()
}

// Enabled reports whether the notifier has any active sinks.
func (s *Service) Enabled() bool {
	return s != nil && len(s.sinks) > 0
}
