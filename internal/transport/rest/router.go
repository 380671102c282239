package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/rhymebook-backend/internal/config"
	"github.com/heartmarshall/rhymebook-backend/internal/transport/middleware"
)

// RouterDeps holds everything the HTTP router needs.
type RouterDeps struct {
	Lookup   *LookupHandler
	Notebook *NotebookHandler
	Health   *HealthHandler

	Logger      *slog.Logger
	CORS        config.CORSConfig
	RateLimiter *middleware.RateLimiter
	RatePerMin  int
}

// NewRouter assembles the REST routes with the standard middleware chain.
// Health probes sit outside the session and rate-limit middleware.
func NewRouter(deps RouterDeps) http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /api/lookup/rhymes", deps.Lookup.Rhymes)
	api.HandleFunc("GET /api/lookup/means-like", deps.Lookup.MeansLike)
	api.HandleFunc("GET /api/results", deps.Lookup.Results)
	api.HandleFunc("POST /api/notebook/words", deps.Notebook.Save)
	api.HandleFunc("GET /api/notebook/words", deps.Notebook.List)

	apiChain := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(deps.Logger),
		middleware.Logger(deps.Logger),
		middleware.CORS(deps.CORS),
		deps.RateLimiter.Limit(deps.RatePerMin),
		middleware.Session,
	)

	root := http.NewServeMux()
	root.Handle("/api/", apiChain(api))
	root.HandleFunc("GET /healthz", deps.Health.Live)
	root.HandleFunc("GET /health", deps.Health.Health)

	return root
}
