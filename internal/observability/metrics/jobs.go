// Package metrics defines the metric names and tag conventions for the job pipeline.
package metrics

import (
	"time"

	obserrors "github.com/target/text2ture/internal/observability/errors"
	"github.com/target/text2ture/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess  = "success"
	ResultError    = "error"
	ResultRejected = "rejected"
)

// Stage constants name the lifecycle point being reported.
const (
	StageSubmit   = "submit"
	StageStart    = "start"
	StageComplete = "complete"
	StagePersist  = "persist"
)

// JobMetric captures details about a job lifecycle event for metric emission.
type JobMetric struct {
	Stage    string
	Result   string
	Duration time.Duration
	Err      error
}

// EmitJobLifecycle emits standardised job lifecycle metrics.
func EmitJobLifecycle(sink statsd.Sink, in JobMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"stage":  in.Stage,
		"result": in.Result,
	}
	if in.Err != nil && in.Result != ResultSuccess {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("job.transition", 1, tags)

	if in.Duration > 0 {
		sink.Timing("job.duration", in.Duration, CloneTags(tags))
	}
}

// ExecutorGauges is a point-in-time view of the worker pool.
type ExecutorGauges struct {
	QueueDepth int
	InFlight   int
}

// EmitExecutorGauges reports queue depth and in-flight work.
func EmitExecutorGauges(sink statsd.Sink, g ExecutorGauges) {
	if sink == nil {
		return
	}
	sink.Gauge("executor.queue_depth", float64(g.QueueDepth), nil)
	sink.Gauge("executor.in_flight", float64(g.InFlight), nil)
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
