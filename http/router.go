package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"depreciation-calculator/service"
)

type RouterConfig struct {
	Depreciation   *service.DepreciationService
	Compare        *service.CompareService
	Limiter        *RateLimiter
	Logger         *slog.Logger
	Currency       string
	AllowedOrigins []string
	MetricsEnabled bool
}

// NewRouter wires the form, the JSON API, health and metrics endpoints.
// Only the calculation routes are rate limited.
func NewRouter(cfg RouterConfig) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	depreciationHandler := NewDepreciationHandler(cfg.Depreciation)
	compareHandler := NewCompareHandler(cfg.Compare)
	formHandler := NewFormHandler(cfg.Depreciation, cfg.Currency)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	}))

	limited := func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(RateLimitMiddleware(cfg.Limiter))
		}
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", formHandler.Show)
	r.Group(func(r chi.Router) {
		limited(r)
		r.Post("/calculate", formHandler.Submit)
	})

	r.Route("/api/depreciation", func(r chi.Router) {
		r.Get("/methods", depreciationHandler.Methods)
		r.Group(func(r chi.Router) {
			limited(r)
			r.Post("/calculate", depreciationHandler.Calculate)
			r.Post("/compare", compareHandler.Compare)
		})
	})

	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}
