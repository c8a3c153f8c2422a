package mw

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// loggingResponseWriter wraps http.ResponseWriter to capture the status code
// and the number of body bytes written.
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(p []byte) (int, error) {
	n, err := lrw.ResponseWriter.Write(p)
	lrw.bytes += n
	return n, err
}

// RequestLogging returns a Chi middleware that tags every request with a short
// request id and logs arrival and completion. The id correlates the two lines
// when requests overlap, which they routinely do while the description cache
// is rebuilding.
func RequestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := logger.With("request_id", uuid.New().String()[:8])

			reqLogger.Debug("request received",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)

			lrw := newLoggingResponseWriter(w)
			next.ServeHTTP(lrw, r)

			reqLogger.Debug("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", lrw.statusCode,
				"bytes", lrw.bytes,
				"duration", time.Since(start),
			)
		})
	}
}
