package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cataloghandler "rescueops/internal/catalog/handler"
	certificationhandler "rescueops/internal/certification/handler"
	compliancehandler "rescueops/internal/compliance/handler"
	"rescueops/internal/platform/metrics"
	"rescueops/internal/platform/middleware"
	rosterhandler "rescueops/internal/roster/handler"
	snapshothandler "rescueops/internal/snapshot/handler"
)

// Handlers collects the domain handlers the router mounts. The router owns
// transport concerns only; business logic stays in the services.
type Handlers struct {
	Roster        *rosterhandler.Handler
	Catalog       *cataloghandler.Handler
	Certification *certificationhandler.Handler
	Compliance    *compliancehandler.Handler
	Snapshot      *snapshothandler.Handler
}

// NewRouter wires the full API surface with the shared middleware stack.
// Certification routes skip the JSON content-type guard because document
// uploads arrive as multipart form data.
func NewRouter(h Handlers, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Latency(m))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		h.Roster.Register(r)
		h.Catalog.Register(r)
		h.Compliance.Register(r)
		h.Snapshot.Register(r)
	})

	r.Group(func(r chi.Router) {
		h.Certification.Register(r)
	})

	return r
}
