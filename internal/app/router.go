package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lotus-studio/lotus/internal/accounts"
	"github.com/lotus-studio/lotus/internal/auth"
	"github.com/lotus-studio/lotus/internal/instructors"
	"github.com/lotus-studio/lotus/internal/observability"
	"github.com/lotus-studio/lotus/internal/sessions"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	AuthMiddleware     *auth.Middleware
	AuthHandler        *auth.Handler
	AccountsHandler    *accounts.Handler
	InstructorsHandler *instructors.Handler
	SessionsHandler    *sessions.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with Lotus defaults. Everything under
// /api except the auth endpoints requires an authenticated identity.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Auth:    params.AuthMiddleware,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)

		r.Group(func(r chi.Router) {
			r.Use(params.AuthMiddleware.RequireAuth)
			r.Route("/user", params.AccountsHandler.MountRoutes)
			r.Route("/teacher", params.InstructorsHandler.MountRoutes)
			r.Route("/session", params.SessionsHandler.MountRoutes)
		})
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
