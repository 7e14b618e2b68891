/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. RealIP:     Client IP from X-Forwarded-For / X-Real-IP
  3. Logger:     zap request logging (RequestLogger)
  4. Recoverer:  Panic recovery (500 instead of crash)
  5. CORS:       Cross-origin requests from the site frontend

  The calculator group additionally goes through the per-client RateLimiter.

ROUTE GROUPS:
  /api/calculators/*    Calculators (rate limited)
  /api/rates            Reference data
  /api/site             Landing page content
  /healthz, /metrics    Operations
  /                     Server-rendered landing page

SEE ALSO:
  - handlers.go: Handler implementations
  - middleware.go: RateLimiter, RequestLogger
  - cmd/clasc/serve.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions configures NewRouter. A nil Limiter leaves the calculators
// unthrottled.
type RouterOptions struct {
	AllowedOrigins []string
	Limiter        *RateLimiter
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(h.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/site", h.GetSite)
		r.Get("/rates", h.GetRates)

		// Calculator routes
		r.Route("/calculators", func(r chi.Router) {
			if opts.Limiter != nil {
				r.Use(opts.Limiter.Middleware)
			}
			r.Post("/actuarial", h.ActuarialCalculate)
			r.Post("/actuarial/validate", h.ActuarialValidate)
			r.Post("/liquidation", h.LiquidationCalculate)
		})
	})

	r.Get("/", h.Index)

	return r
}
