package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/bft-labs/kalah/pkg/log"
)

// requestLogger logs one line per request through the structured logger.
func requestLogger(logger log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Debug("http request",
					log.String("method", r.Method),
					log.String("path", r.URL.Path),
					log.Int("status", ww.Status()),
					log.Int("bytes", ww.BytesWritten()),
					log.Duration("elapsed", time.Since(start)),
					log.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
