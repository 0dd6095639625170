// Package kernel assembles the HTTP handler: global middleware, the metrics
// endpoint and the API routes.
package kernel

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/shashiranjanraj/kashvi-shop/app/routes"
	"github.com/shashiranjanraj/kashvi-shop/config"
	"github.com/shashiranjanraj/kashvi-shop/pkg/metrics"
	"github.com/shashiranjanraj/kashvi-shop/pkg/middleware"
	"github.com/shashiranjanraj/kashvi-shop/pkg/reqid"
	"github.com/shashiranjanraj/kashvi-shop/pkg/router"
)

// NewRouter builds the router with every route registered.
func NewRouter(deps routes.Deps, cfg config.HTTPConfig) *router.Router {
	r := router.New()

	// Outermost first:
	//  1. metrics      total latency including everything below
	//  2. request id   before anything logs
	//  3. logger       request-scoped logger in the context
	//  4. recovery     panics become 500 and are logged with the request id
	//  5. CORS
	//  6. rate limit   per client IP
	//  7. body limit
	//  8. strip slashes so /orders/ and /orders match the same route
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(middleware.NewLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)))
	r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	r.Use(chimw.StripSlashes)

	r.Handle("/metrics", "metrics", metrics.Handler())
	routes.RegisterAPI(r, deps)
	return r
}

// NewHandler returns the root http.Handler.
func NewHandler(deps routes.Deps, cfg config.HTTPConfig) http.Handler {
	return NewRouter(deps, cfg).Handler()
}
