package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/statusgate/engine/internal/api/types"
	"github.com/statusgate/engine/internal/directive"
	appErr "github.com/statusgate/engine/pkg/errors"
	"github.com/statusgate/engine/pkg/logger"
)

// StatusOptions configure the Status middleware.
type StatusOptions struct {
	RejectEmptyBody bool
	// MaxBodyBytes caps the buffered body; <= 0 means no cap.
	MaxBodyBytes int64
}

// Status reads a POST body, stores its status directive in the request
// context and forces the downstream response to that status. The body is
// restored for the handler.
func Status(opts StatusOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			body, err := readBody(w, r, opts.MaxBodyBytes)
			if err != nil {
				writeBodyError(w, r, err)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			d, ok, err := directive.Interpret(r.Method, body, directive.Options{RejectEmptyBody: opts.RejectEmptyBody})
			if err != nil {
				writeBodyError(w, r, err)
				return
			}
			pw := &patchWriter{ResponseWriter: w, ctx: r.Context()}
			if ok {
				r = r.WithContext(directive.NewContext(r.Context(), d))
				pw.ctx = r.Context()
				pw.status = d.Code
			}
			next.ServeHTTP(pw, r)
			if !pw.wroteHeader {
				// Handler wrote nothing; commit here so the directive still wins.
				pw.WriteHeader(http.StatusOK)
			}
		})
	}
}

func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	src := r.Body
	if limit > 0 {
		src = http.MaxBytesReader(w, r.Body, limit)
	}
	defer src.Close()
	return io.ReadAll(src)
}

func writeBodyError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		tooLarge *http.MaxBytesError
		parse    *directive.ParseError
		ae       *appErr.AppError
	)
	switch {
	case errors.As(err, &tooLarge):
		ae = appErr.Wrap(err, appErr.CodeTooLarge, types.MsgBodyTooLarge)
	case errors.As(err, &parse):
		ae = appErr.Wrap(err, appErr.CodeInvalid, types.MsgInvalidJSON)
	case errors.Is(err, directive.ErrInvalidStatus):
		ae = appErr.Wrap(err, appErr.CodeInvalid, types.MsgInvalidStatus)
	default:
		// Client went away mid-body or sent a broken chunked stream.
		ae = appErr.Wrap(err, appErr.CodeInvalid, types.MsgInvalidJSON)
	}
	logger.L().Debug("request body rejected",
		zap.String("id", GetRequestID(r.Context())),
		zap.Error(ae),
	)
	types.WriteError(w, ae)
}

// patchWriter overrides the status the handler writes and drops output once
// the request context is done.
type patchWriter struct {
	http.ResponseWriter
	ctx         context.Context
	status      int
	wroteHeader bool
}

func (pw *patchWriter) WriteHeader(code int) {
	if pw.wroteHeader {
		return
	}
	pw.wroteHeader = true
	if pw.ctx.Err() != nil {
		return
	}
	if pw.status != 0 {
		code = pw.status
	}
	pw.ResponseWriter.WriteHeader(code)
}

func (pw *patchWriter) Write(b []byte) (int, error) {
	if !pw.wroteHeader {
		pw.WriteHeader(http.StatusOK)
	}
	if err := pw.ctx.Err(); err != nil {
		return 0, err
	}
	return pw.ResponseWriter.Write(b)
}

func (pw *patchWriter) Flush() {
	if !pw.wroteHeader {
		pw.WriteHeader(http.StatusOK)
	}
	if pw.ctx.Err() != nil {
		return
	}
	if f, ok := pw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (pw *patchWriter) Unwrap() http.ResponseWriter { return pw.ResponseWriter }
