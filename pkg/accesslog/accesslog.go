// Package accesslog provides an HTTP middleware that logs one entry
// per served request through the application logger.
package accesslog

import (
	"net/http"
	"time"

	"github.com/arthurmdp/bankledger/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler returns a middleware that records method, path, status,
// response size and duration of every request.
func Handler(logger logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.With(r.Context(),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			).Info("request")
		}
		return http.HandlerFunc(f)
	}
}
