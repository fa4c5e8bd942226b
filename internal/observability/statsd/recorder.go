package statsd

import (
	"sync"
	"time"
)

// Sample is one metric observation captured by a Recorder.
type Sample struct {
	Kind  string // "count", "gauge" or "timing"
	Name  string
	Value float64
	Tags  map[string]string
}

// Recorder is an in-memory Sink used by tests and local debugging.
type Recorder struct {
	mu      sync.Mutex
	samples []Sample
}

var _ Sink = (*Recorder)(nil)

// Count records a counter sample.
func (r *Recorder) Count(name string, value int64, tags map[string]string) {
	r.add(Sample{Kind: "count", Name: name, Value: float64(value), Tags: cloneTags(tags)})
}

// Gauge records a gauge sample.
func (r *Recorder) Gauge(name string, value float64, tags map[string]string) {
	r.add(Sample{Kind: "gauge", Name: name, Value: value, Tags: cloneTags(tags)})
}

// Timing records a timing sample in milliseconds.
func (r *Recorder) Timing(name string, value time.Duration, tags map[string]string) {
	ms := float64(value) / float64(time.Millisecond)
	r.add(Sample{Kind: "timing", Name: name, Value: ms, Tags: cloneTags(tags)})
}

func (r *Recorder) add(s Sample) {
	r.mu.Lock()
	r.samples = append(r.samples, s)
	r.mu.Unlock()
}

// Samples returns a snapshot of everything recorded so far.
func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sample, len(r.samples))
	copy(out, r.samples)
	return out
}

// CountWhere sums counter values for name whose tags include every pair in match.
func (r *Recorder) CountWhere(name string, match map[string]string) int64 {
	var total int64
	for _, s := range r.Samples() {
		if s.Kind != "count" || s.Name != name {
			continue
		}
		if tagsMatch(s.Tags, match) {
			total += int64(s.Value)
		}
	}
	return total
}

func tagsMatch(have, want map[string]string) bool {
	for k, v := range want {
		if have[k] != v {
			return false
		}
	}
	return true
}
