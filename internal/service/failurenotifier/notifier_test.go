package failurenotifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/text2ture/internal/observability/notify"
)

type capture struct {
	mu       sync.Mutex
	received []notify.JobFailurePayload
}

func (c *capture) sink() notify.Sink {
	return notify.SinkFunc(func(_ context.Context, payload notify.JobFailurePayload) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.received = append(c.received, payload)
		return nil
	})
}

func TestServiceNotifyJobFailure(t *testing.T) {
	var a, b capture
	svc := NewService(Options{
		Sinks: []SinkRegistration{
			{Name: "a", Sink: a.sink()},
			{Name: "b", Sink: b.sink()},
			{Name: "nil"},
		},
	})
	require.True(t, svc.Enabled())

	svc.NotifyJobFailure(context.Background(), notify.JobFailurePayload{UID: "u1", Error: "boom"})

	require.Len(t, a.received, 1)
	require.Len(t, b.received, 1)
	assert.Equal(t, notify.SeverityCritical, a.received[0].Severity)
	assert.False(t, a.received[0].OccurredAt.IsZero())
}

func TestServiceTimeoutSeverity(t *testing.T) {
	var c capture
	svc := NewService(Options{Sinks: []SinkRegistration{{Sink: c.sink()}}})

	svc.NotifyJobFailure(context.Background(), notify.JobFailurePayload{UID: "u1", ErrorClass: "timeout"})

	require.Len(t, c.received, 1)
	assert.Equal(t, notify.SeverityWarning, c.received[0].Severity)
}

func TestServiceSkipsCanceled(t *testing.T) {
	var c capture
	svc := NewService(Options{Sinks: []SinkRegistration{{Sink: c.sink()}}})

	svc.NotifyJobFailure(context.Background(), notify.JobFailurePayload{UID: "u1", ErrorClass: "canceled"})

	assert.Empty(t, c.received)
}

func TestServiceDisabled(t *testing.T) {
	svc := NewService(Options{})
	assert.False(t, svc.Enabled())

	var nilSvc *Service
	assert.False(t, nilSvc.Enabled())
	assert.NotPanics(t, func() {
		nilSvc.NotifyJobFailure(context.Background(), notify.JobFailurePayload{})
	})
}

func TestServiceLogsErrorsAndBoundsDelivery(t *testing.T) {
	svc := NewService(Options{
		DeliveryTimeout: 20 * time.Millisecond,
		Sinks: []SinkRegistration{
			{
				Name: "fail",
				Sink: notify.SinkFunc(func(context.Context, notify.JobFailurePayload) error {
					return errors.New("boom")
				}),
			},
			{
				Name: "slow",
				Sink: notify.SinkFunc(func(ctx context.Context, _ notify.JobFailurePayload) error {
					<-ctx.Done()
					return ctx.Err()
				}),
			},
		},
	})

	done := make(chan struct{})
	go func() {
		svc.NotifyJobFailure(context.Background(), notify.JobFailurePayload{UID: "u1"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("NotifyJobFailure did not honour the delivery timeout")
	}
}
