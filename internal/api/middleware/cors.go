package middleware

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/statusgate/engine/internal/origin"
	"github.com/statusgate/engine/pkg/logger"
)

const defaultMaxAge = 10 * time.Minute

// CORS answers preflight probes and applies the origin decision to every
// other response, whatever stage produced it. maxAge below one second falls
// back to ten minutes.
func CORS(policy *origin.Policy, maxAge time.Duration) func(http.Handler) http.Handler {
	if maxAge < time.Second {
		maxAge = defaultMaxAge
	}
	maxAgeValue := strconv.Itoa(int(maxAge / time.Second))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := policy.DecideRequest(r)
			w.Header().Add("Vary", origin.HeaderOrigin)

			if IsPreflight(r) {
				preflight(w, r, d, maxAgeValue)
				return
			}
			if !d.Allowed && len(r.Header.Values(origin.HeaderOrigin)) > 0 {
				corsRejected.WithLabelValues("actual").Inc()
				logger.L().Debug("cors origin rejected",
					zap.String("id", GetRequestID(r.Context())),
					zap.Strings("origin", r.Header.Values(origin.HeaderOrigin)),
				)
			}
			// Set up front so net/http's implicit 200 for a silent handler
			// carries the headers too.
			d.Apply(w.Header())
			next.ServeHTTP(&originWriter{ResponseWriter: w, decision: d}, r)
		})
	}
}

// originWriter reapplies the decision at the moment the status line is
// committed, undoing any allow-origin value a later stage set itself.
type originWriter struct {
	http.ResponseWriter
	decision origin.Decision
	applied  bool
}

func (ow *originWriter) apply() {
	if !ow.applied {
		ow.applied = true
		ow.decision.Apply(ow.ResponseWriter.Header())
	}
}

func (ow *originWriter) WriteHeader(code int) {
	ow.apply()
	ow.ResponseWriter.WriteHeader(code)
}

func (ow *originWriter) Write(b []byte) (int, error) {
	ow.apply()
	return ow.ResponseWriter.Write(b)
}

func (ow *originWriter) Flush() {
	ow.apply()
	if f, ok := ow.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (ow *originWriter) Unwrap() http.ResponseWriter { return ow.ResponseWriter }
