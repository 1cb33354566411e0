package middleware

import (
	"net/http"
	"time"

	chimid "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/statusgate/engine/pkg/logger"
)

// Logging logs basic request information with request ID.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimid.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.L().Info("request",
			zap.String("id", GetRequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("origin", r.Header.Get("Origin")),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
		)
	})
}
