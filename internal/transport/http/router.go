package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ptz-simulator/internal/platform/metrics"
	"ptz-simulator/internal/platform/middleware"
	"ptz-simulator/internal/ratelimit"
)

// NewRouter wires all endpoints. The public surface is the submission
// endpoint (rate limited) and the admin login; the admin list, bulk edit,
// and export sit behind the admin token.
func NewRouter(
	submissions *SubmissionHandler,
	admin *AdminHandler,
	validator middleware.TokenValidator,
	limiter *ratelimit.Limiter,
	m *metrics.Metrics,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(m))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.With(limiter.Middleware).Post("/submissions", submissions.handleCreate)
		r.Post("/admin/login", admin.handleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(validator, logger))
		r.Get("/submissions", submissions.handleList)
		r.Delete("/submissions", submissions.handleDelete)
		r.Put("/submissions", submissions.handleReplace)
		r.Get("/submissions/export", submissions.handleExport)
	})

	return r
}
