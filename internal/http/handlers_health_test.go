package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/target/text2ture/internal/core"
)

type fixedStats core.ExecutorStats

func (f fixedStats) Stats() core.ExecutorStats { return core.ExecutorStats(f) }

func TestHealthHandlerGET(t *testing.T) {
	h := &HealthHandlers{
		Executor:              fixedStats{Workers: 4, Capacity: 100, Queued: 2, InFlight: 1, Running: true},
		TranscriberConfigured: true,
		SaveFolder:            "./output",
	}
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	resp := rec.Result()
	t.Cleanup(func() { _ = resp.Body.Close() })

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %q", ct)
	}

	want := `{"status":"healthy","fal_api_key_configured":true,"save_folder":"./output",` +
		`"executor":{"workers":4,"capacity":100,"queued":2,"in_flight":1,"completed":0,"failed":0,"rejected":0,"running":true}}` + "\n"
	if body := rec.Body.String(); body != want {
		t.Fatalf("unexpected body:\nwant %s\ngot  %s", want, body)
	}
}

func TestHealthHandlerWithoutExecutor(t *testing.T) {
	h := &HealthHandlers{SaveFolder: "out"}
	rec := httptest.NewRecorder()

	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	want := `{"status":"healthy","fal_api_key_configured":false,"save_folder":"out"}` + "\n"
	if body := rec.Body.String(); body != want {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestHealthHandlerHEAD(t *testing.T) {
	h := &HealthHandlers{SaveFolder: "out"}
	req := httptest.NewRequest(http.MethodHead, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	resp := rec.Result()
	t.Cleanup(func() { _ = resp.Body.Close() })

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %q", ct)
	}

	if bodyLen := rec.Body.Len(); bodyLen != 0 {
		t.Fatalf("expected empty body for HEAD request, got %d bytes", bodyLen)
	}
}
