package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/statusgate/engine/internal/api/handlers"
	mw "github.com/statusgate/engine/internal/api/middleware"
	"github.com/statusgate/engine/internal/origin"
)

type Dependencies struct {
	Origins     *origin.Policy
	CORSMaxAge  time.Duration
	Verifier    mw.Verifier
	Status      mw.StatusOptions
	ErrorDetail bool
	// TestStatus serves POST /test-status; defaults to StatusHandler.
	TestStatus http.HandlerFunc
}

// NewRouter wires the fixed pipeline: CORS (preflight + origin patch), panic
// recovery, then for /test-status the auth gate and the status directive.
func NewRouter(dep Dependencies) http.Handler {
	if dep.Verifier == nil {
		dep.Verifier = mw.PresenceVerifier{}
	}
	if dep.TestStatus == nil {
		dep.TestStatus = handlers.NewStatusHandler().TestStatus
	}

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Metrics)
	r.Use(mw.CORS(dep.Origins, dep.CORSMaxAge))
	r.Use(mw.Recovery(dep.ErrorDetail))
	r.Use(chimid.Compress(5))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	// Health endpoints
	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Auth runs before routing inside the subrouter, so wrong methods still
	// need credentials before they get their 405.
	r.Route("/test-status", func(sr chi.Router) {
		sr.Use(mw.Auth(dep.Verifier))
		sr.Use(mw.Status(dep.Status))
		sr.NotFound(handlers.NotFound)
		sr.MethodNotAllowed(handlers.MethodNotAllowed)
		sr.Post("/", dep.TestStatus)
	})

	return r
}
