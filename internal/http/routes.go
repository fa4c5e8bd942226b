package httpx

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/target/text2ture/internal/core"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Submitter JobSubmitter
	Status    StatusProvider
	Executor  ExecutorStatsProvider
	// Optional: attempt history. /history/{uid} answers 404 when nil.
	Journal core.OutcomeJournal

	// Configuration
	ObjectsRoot           string
	ObjectsURLPrefix      string
	TranscriberConfigured bool
	CORSAllowedOrigins    []string
	MaxBodyBytes          int64
	Logger                *slog.Logger
}

// NewRouter creates the HTTP handler with its middleware stack.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	jobHandlers := &JobHandlers{
		Submitter:    services.Submitter,
		Status:       services.Status,
		MaxBodyBytes: services.MaxBodyBytes,
	}
	healthHandlers := &HealthHandlers{
		Executor:              services.Executor,
		TranscriberConfigured: services.TranscriberConfigured,
		SaveFolder:            services.ObjectsRoot,
	}
	historyHandlers := &HistoryHandlers{Journal: services.Journal}

	mux.HandleFunc("POST /submit", jobHandlers.Submit)
	mux.HandleFunc("GET /status/{uid}", jobHandlers.GetStatus)
	mux.HandleFunc("GET /history/{uid}", historyHandlers.List)
	mux.HandleFunc("GET /health", healthHandlers.Health)
	mux.HandleFunc("HEAD /health", healthHandlers.Health)
	mux.HandleFunc("GET /{$}", rootHandler)

	if services.ObjectsRoot != "" {
		prefix := "/" + strings.Trim(services.ObjectsURLPrefix, "/") + "/"
		mux.Handle("GET "+prefix, objectsHandler(prefix, services.ObjectsRoot))
	}

	return Chain(mux,
		Recover(logger),
		Logging(logger),
		CORS(services.CORSAllowedOrigins),
	)
}

// objectsHandler serves result files from root. Directory listings are not exposed.
func objectsHandler(prefix, root string) http.Handler {
	files := http.StripPrefix(prefix, http.FileServer(http.Dir(root)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
