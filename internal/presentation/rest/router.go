package rest

import (
	"log/slog"
	"net/http"
)

// RouterConfig wires the HTTP surface.
type RouterConfig struct {
	Assessments  *AssessmentHandler
	Health       *HealthHandler
	Metrics      http.Handler
	Logger       *slog.Logger
	RateLimitRPS int
}

// NewRouter builds the HTTP handler. Rate limiting applies to the /v1 API
// only and is disabled when RateLimitRPS is zero.
func NewRouter(cfg RouterConfig) http.Handler {
	api := http.NewServeMux()
	cfg.Assessments.RegisterRoutes(api)

	var apiHandler http.Handler = api
	if cfg.RateLimitRPS > 0 {
		apiHandler = RateLimitMiddleware(NewRateLimiter(cfg.RateLimitRPS))(apiHandler)
	}

	mux := http.NewServeMux()
	mux.Handle("/v1/", apiHandler)
	cfg.Health.RegisterRoutes(mux)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	return LoggingMiddleware(cfg.Logger)(RecoveryMiddleware(cfg.Logger)(mux))
}
