// Package middleware holds the cross-cutting handlers wrapped around every
// request: logger injection, access logging, panic recovery and response
// headers.
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type CtxKey int8

const (
	CtxKeyLogger CtxKey = iota
)

// Logger puts logger on the request context, tagged with the request id
// when one is set.
func Logger(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := logger
			if id := middleware.GetReqID(r.Context()); id != "" {
				l = l.With("request_id", id)
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), CtxKeyLogger, l)))
		})
	}
}

// LoggerFromContext returns the request logger, or a no-op logger outside
// of a request.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(CtxKeyLogger).(*zap.SugaredLogger); ok {
		return l
	}

	return zap.NewNop().Sugar()
}

// RequestLogger writes one line per request once it completes. In
// production only method, path, status and duration are logged.
func RequestLogger(logger *zap.SugaredLogger, production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				fields := []interface{}{
					"method", r.Method,
					"path", r.URL.Path,
					"status", status(ww),
					"duration", time.Since(start),
				}
				if !production {
					fields = append(fields,
						"remote", r.RemoteAddr,
						"bytes", ww.BytesWritten(),
						"user_agent", r.UserAgent(),
						"request_id", middleware.GetReqID(r.Context()),
					)
				}
				logger.Infow("request", fields...)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func status(ww middleware.WrapResponseWriter) int {
	if s := ww.Status(); s != 0 {
		return s
	}

	return http.StatusOK
}
