package httpapi

import (
	"net/http"

	"github.com/riskibarqy/match-predictor/internal/platform/logging"
)

// RouterConfig carries the optional collaborators of the router. A nil
// Verifier makes every request anonymous; a nil MetricsHandler leaves
// /metrics unregistered.
type RouterConfig struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	Verifier           TokenVerifier
	Sessions           SessionRecorder
	Requests           RequestRecorder
	MetricsHandler     http.Handler
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg)
	registerMatchRoutes(mux, handler, cfg)
	registerPageRoutes(mux, handler)

	return RequestTracing(
		RequestID(
			RequestLogging(logger,
				CORS(cfg.CORSAllowedOrigins,
					HTTPMetrics(cfg.Requests,
						recoverPanic(logger, mux))))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
