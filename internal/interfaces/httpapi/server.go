package httpapi

import (
	"net/http"

	"github.com/sourcegraph/conc/panics"

	"github.com/riskibarqy/fantasy-tour/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	corsAllowedOrigins []string,
	internalJobToken string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerPublicRoutes(mux, handler)
	registerUserRoutes(mux, handler)
	registerInternalJobRoutes(mux, handler, internalJobToken)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var catcher panics.Catcher
		catcher.Try(func() {
			next.ServeHTTP(w, r)
		})
		if recovered := catcher.Recovered(); recovered != nil {
			logger.ErrorContext(r.Context(), "panic recovered",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", recovered.Value,
				"stack", string(recovered.Stack),
			)
			writeError(r.Context(), w, recovered.AsError())
		}
	})
}
