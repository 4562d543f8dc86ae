package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-league-snapshot/internal/platform/logging"
)

// RouterConfig carries the optional pieces of the router. MetricsHandler is
// mounted on /metrics when non-nil.
type RouterConfig struct {
	CORSAllowedOrigins []string
	MetricsHandler     http.Handler
	Recorder           HTTPRecorder
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.MetricsHandler)
	registerSnapshotRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, cfg.Recorder, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
