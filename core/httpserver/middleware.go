package httpserver

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/m3rciful/flagbot/core/logger"
)

// Recover catches panics in handlers and prevents the server from crashing.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error(r.Context(), "http", "panic",
					slog.Any("err", rec),
					slog.String("stack", string(debug.Stack())),
				)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for the request summary log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// Logging attaches a correlation id to the request context and emits one
// summary line per request.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rid := logger.BuildRID(start)
		ctx := logger.WithRID(r.Context(), rid)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		level := slog.LevelInfo
		status := "ok"
		if rec.status >= 500 {
			level = slog.LevelError
			status = "fail"
		} else if rec.status >= 400 {
			level = slog.LevelWarn
			status = "skip"
		}
		logger.Event(ctx, "http", level, "request.summary",
			slog.String("status", status),
			slog.String("method", r.Method),
			slog.String("path", logger.SanitizeLimit(r.URL.Path, 128)),
			slog.Int("http_code", rec.status),
			slog.Duration("duration", logger.Took(start)),
		)
	})
}

// Chain wraps a handler with the standard middleware stack.
func Chain(h http.Handler) http.Handler {
	return Recover(Logging(h))
}
