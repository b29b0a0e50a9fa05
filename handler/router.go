package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"relay/metrics"
)

// Options configures the relay router.
type Options struct {
	Generator      Generator
	Metrics        *metrics.Recorder
	AllowedOrigins []string
	// Gatherer backs /metrics. The route is not mounted when nil.
	Gatherer prometheus.Gatherer
}

// NewRouter constructs the HTTP handler for the relay.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(logRequest)
	r.Use(admitOrigins(NewOriginPolicy(opts.AllowedOrigins)))

	r.Method(http.MethodGet, "/", NewPromptHandler(opts.Generator, opts.Metrics))
	r.Get("/health", Health)
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}
