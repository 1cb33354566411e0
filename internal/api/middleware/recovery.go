package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	chimid "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/statusgate/engine/internal/api/types"
	appErr "github.com/statusgate/engine/pkg/errors"
	"github.com/statusgate/engine/pkg/logger"
)

// Recovery logs panics and returns 500 with {"error":"System error"}. With
// detail set, the panic value is included under "detail".
func Recovery(detail bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimid.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.L().Error("panic recovered",
					zap.String("id", GetRequestID(r.Context())),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				if ww.Status() != 0 || r.Context().Err() != nil {
					// Status line already sent, or nobody is listening.
					return
				}
				ae := appErr.New(appErr.CodeInternal, types.MsgSystemError)
				if detail {
					ae.WithMeta("detail", fmt.Sprint(rec))
				}
				types.WriteError(ww, ae)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
