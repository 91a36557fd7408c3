package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"service-assignment/internal/http/handlers"
	mw "service-assignment/internal/http/middleware"
	"service-assignment/internal/http/middleware/ratelimit"
	"service-assignment/internal/http/pprofserver"
	"service-assignment/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
func New(
	logger logx.Logger,
	base *handlers.Handlers,
	assignments *handlers.AssignmentHandler,
	orders *handlers.OrderHandler,
	rl *ratelimit.Middleware,
	pprofCfg pprofserver.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(mw.Observability(logger))
	if rl != nil {
		r.Use(rl.Handler())
	}
	r.Use(middleware.Timeout(5 * time.Second))

	r.Get("/ping", base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/debug/pprof/*", pprofserver.Handler(pprofCfg))

	r.Route("/assignments/{id}", func(r chi.Router) {
		r.Post("/accept", assignments.Accept)
		r.Post("/reject", assignments.Reject)
	})

	r.Route("/orders/{id}", func(r chi.Router) {
		r.Get("/", orders.Get)
		r.Get("/history", orders.History)
		r.Get("/assignment", assignments.OpenForOrder)
		r.Post("/cancel", orders.Cancel)
	})

	r.NotFound(http.HandlerFunc(base.NotFound))

	return r
}
