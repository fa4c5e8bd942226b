package httpx

import (
	"net/http"

	"github.com/target/text2ture/internal/core"
)

// ExecutorStatsProvider exposes worker pool counters. *service.Executor satisfies it.
type ExecutorStatsProvider interface {
	Stats() core.ExecutorStats
}

// HealthHandlers report liveness plus a summary of the runtime configuration.
type HealthHandlers struct {
	Executor              ExecutorStatsProvider
	TranscriberConfigured bool
	SaveFolder            string
}

type healthResponse struct {
	Status              string              `json:"status"`
	FALAPIKeyConfigured bool                `json:"fal_api_key_configured"`
	SaveFolder          string              `json:"save_folder"`
	Executor            *core.ExecutorStats `json:"executor,omitempty"`
}

// Health handles GET and HEAD /health.
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		return
	}

	resp := healthResponse{
		Status:              "healthy",
		FALAPIKeyConfigured: h.TranscriberConfigured,
		SaveFolder:          h.SaveFolder,
	}
	if h.Executor != nil {
		stats := h.Executor.Stats()
		resp.Executor = &stats
	}
	WriteJSON(w, http.StatusOK, resp)
}

// rootHandler answers GET / with a banner so load balancers and humans can see the API is up.
func rootHandler(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Text2Ture API is running"})
}
