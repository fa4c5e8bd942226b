package statsd

import (
	"net"
	"strings"
	"testing"
	"time"
)

func TestSanitizePrefix(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"  text2ture.api  ": "text2ture.api",
		"..foo..":           "foo",
		".":                 "",
		"":                  "",
	}

	for input, want := range tests {
		if got := sanitizePrefix(input); got != want {
			t.Fatalf("sanitizePrefix(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeMetricName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		" job/metric ":  "job_metric",
		"foo..bar":      "foo.bar",
		"multi  space":  "multi__space",
		"slash/name/id": "slash_name_id",
		"  ":            "",
	}

	for input, want := range tests {
		if got := normalizeMetricName(input); got != want {
			t.Fatalf("normalizeMetricName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFormatTags(t *testing.T) {
	t.Parallel()

	global := map[string]string{
		"env":       "prod",
		" service ": " text2ture ",
	}
	local := map[string]string{
		"result": " success ",
		"":       "ignored",
		"env":    "stage",
	}

	got := formatTags(global, local)
	want := "|#env:stage,result:success,service:text2ture"
	if got != want {
		t.Fatalf("formatTags mismatch\n got: %q\nwant: %q", got, want)
	}

	if got := formatTags(nil, nil); got != "" {
		t.Fatalf("formatTags(nil, nil) = %q, want empty string", got)
	}
}

func listenUDP(t *testing.T) net.PacketConn {
	t.Helper()
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen udp: %v", err)
	}
	t.Cleanup(func() { _ = pc.Close() })
	return pc
}

func readPacket(t *testing.T, pc net.PacketConn) string {
	t.Helper()
	buf := make([]byte, 2048)
	if err := pc.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	n, _, err := pc.ReadFrom(buf)
	if err != nil {
		t.Fatalf("read packet: %v", err)
	}
	return string(buf[:n])
}

func TestClientBatchesLinesUntilFlush(t *testing.T) {
	t.Parallel()

	pc := listenUDP(t)
	client, err := NewClient(Config{
		Enabled:       true,
		Address:       pc.LocalAddr().String(),
		Prefix:        "text2ture",
		Logger:        discardLogger(),
		FlushInterval: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	defer client.Close()

	client.Count("job.transition", 1, map[string]string{"result": "success"})
	client.Gauge("executor.queue_depth", 3, nil)
	client.Timing("job.duration", 1500*time.Millisecond, nil)
	client.Flush()

	want := strings.Join([]string{
		"text2ture.job.transition:1|c|#result:success",
		"text2ture.executor.queue_depth:3|g",
		"text2ture.job.duration:1500|ms",
	}, "\n")
	if got := readPacket(t, pc); got != want {
		t.Fatalf("unexpected packet\n got: %q\nwant: %q", got, want)
	}
}

func TestClientSplitsAtMaxPacketSize(t *testing.T) {
	t.Parallel()

	pc := listenUDP(t)
	client, err := NewClient(Config{
		Enabled:       true,
		Address:       pc.LocalAddr().String(),
		Prefix:        "text2ture",
		Logger:        discardLogger(),
		MaxPacketSize: 60,
		FlushInterval: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	line := "text2ture.job.transition:1|c|#result:success"
	client.Count("job.transition", 1, map[string]string{"result": "success"})
	client.Count("job.transition", 1, map[string]string{"result": "success"})

	// The second line does not fit next to the first, so the first goes out alone.
	if got := readPacket(t, pc); got != line {
		t.Fatalf("first packet = %q, want %q", got, line)
	}

	// Close sends whatever is still buffered.
	if err := client.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if got := readPacket(t, pc); got != line {
		t.Fatalf("second packet = %q, want %q", got, line)
	}
}

func TestClientFlushesOnInterval(t *testing.T) {
	t.Parallel()

	pc := listenUDP(t)
	client, err := NewClient(Config{
		Enabled:       true,
		Address:       pc.LocalAddr().String(),
		Logger:        discardLogger(),
		FlushInterval: 10 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	defer client.Close()

	client.Count("jobs.submitted", 2, nil)
	if got := readPacket(t, pc); got != "jobs.submitted:2|c" {
		t.Fatalf("unexpected packet %q", got)
	}
}

func TestClientEnabledAndClose(t *testing.T) {
	t.Parallel()

	pc := listenUDP(t)
	client, err := NewClient(Config{Enabled: true, Address: pc.LocalAddr().String(), Logger: discardLogger()})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	if !client.Enabled() {
		t.Fatal("expected client.Enabled to report true with active connection")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if client.Enabled() {
		t.Fatal("expected client.Enabled to report false after Close")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("Close (second call) error: %v", err)
	}

	// Writes after close are dropped rather than panicking.
	client.Gauge("executor.queue_depth", 3, nil)

	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatal("nil client should report disabled")
	}
	nilClient.Count("x", 1, nil)
	if err := nilClient.Close(); err != nil {
		t.Fatalf("nil client Close error: %v", err)
	}
}

func TestNewClientDisabledWithoutAddress(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{Enabled: true, Address: "   "})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	if client.Enabled() {
		t.Fatal("expected client to stay disabled when address is empty")
	}
}

func TestNewClientDialError(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{Enabled: true, Address: "bad address"})
	if err == nil {
		t.Fatal("expected NewClient to error for invalid address")
	}
	if !strings.Contains(err.Error(), "statsd dial") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	var r Recorder
	r.Count("job.transition", 1, map[string]string{"stage": "complete", "result": "success"})
	r.Count("job.transition", 1, map[string]string{"stage": "complete", "result": "error"})
	r.Gauge("executor.queue_depth", 2, nil)
	r.Timing("job.duration", 1500*time.Millisecond, nil)

	if got := r.CountWhere("job.transition", map[string]string{"stage": "complete"}); got != 2 {
		t.Fatalf("CountWhere(stage=complete) = %d, want 2", got)
	}
	if got := r.CountWhere("job.transition", map[string]string{"result": "error"}); got != 1 {
		t.Fatalf("CountWhere(result=error) = %d, want 1", got)
	}
	samples := r.Samples()
	if len(samples) != 4 || samples[3].Value != 1500 {
		t.Fatalf("unexpected samples: %+v", samples)
	}
}
