package http

import (
	"log/slog"
	nethttp "net/http"

	"igdb-games-service/internal/http/middleware"
	"igdb-games-service/internal/metrics"
)

// NewRouter wraps the route handler with CORS and request logging. Logging sits outermost so
// every response, preflights included, carries a request id.
func NewRouter(routes nethttp.Handler, logger *slog.Logger, recorder *metrics.Recorder, corsOrigins []string) nethttp.Handler {
	return middleware.LoggingMiddleware(logger, recorder, middleware.CORS(corsOrigins, routes))
}
