package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/statusgate/engine/internal/api/types"
	"github.com/statusgate/engine/internal/origin"
	appErr "github.com/statusgate/engine/pkg/errors"
	"github.com/statusgate/engine/pkg/logger"
)

const (
	headerRequestMethod  = "Access-Control-Request-Method"
	headerRequestHeaders = "Access-Control-Request-Headers"
	headerAllowMethods   = "Access-Control-Allow-Methods"
	headerAllowHeaders   = "Access-Control-Allow-Headers"
	headerMaxAge         = "Access-Control-Max-Age"
)

// IsPreflight reports whether r is a CORS preflight probe.
func IsPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get(headerRequestMethod) != ""
}

// preflight never reaches authentication: browsers send probes without
// credentials.
func preflight(w http.ResponseWriter, r *http.Request, d origin.Decision, maxAge string) {
	h := w.Header()
	h.Add("Vary", headerRequestMethod)
	h.Add("Vary", headerRequestHeaders)

	if !d.Allowed {
		corsRejected.WithLabelValues("preflight").Inc()
		logger.L().Debug("cors preflight rejected",
			zap.String("id", GetRequestID(r.Context())),
			zap.Strings("origin", r.Header.Values(origin.HeaderOrigin)),
			zap.String("method", r.Header.Get(headerRequestMethod)),
		)
		types.WriteError(w, appErr.New(appErr.CodeInvalid, types.MsgDisallowedOrigin))
		return
	}

	d.Apply(h)
	h.Set(headerAllowMethods, r.Header.Get(headerRequestMethod))
	if reqHeaders := r.Header.Values(headerRequestHeaders); len(reqHeaders) > 0 {
		h[headerAllowHeaders] = reqHeaders
	}
	h.Set(headerMaxAge, maxAge)
	w.WriteHeader(http.StatusOK)
}
