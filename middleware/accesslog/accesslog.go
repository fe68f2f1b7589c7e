// Package accesslog provides a net/http middleware that logs one
// structured line per request via log/slog, grounded on the teacher's
// accesslog middleware but trimmed to the split the teacher itself
// exhibits elsewhere: a bespoke Logger seam for library-internal fatal
// errors (see the root package's logger.go), and slog for everything at
// the application edge.
package accesslog

import (
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder captures the status code a wrapped http.ResponseWriter
// was sent, since net/http doesn't expose it after the fact.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware logs method, path, status, and duration for every request
// that passes through next, using logger (or slog.Default() if nil).
func Middleware(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
