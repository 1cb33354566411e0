package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/statusgate/engine/internal/api/types"
	appErr "github.com/statusgate/engine/pkg/errors"
	"github.com/statusgate/engine/pkg/logger"
)

const headerAuthorization = "Authorization"

// ErrMissingCredentials is returned when no Authorization value is present.
var ErrMissingCredentials = errors.New("missing authorization header")

// Verifier decides whether request headers carry acceptable credentials.
type Verifier interface {
	Verify(h http.Header) error
}

// PresenceVerifier accepts any non-blank Authorization header without
// inspecting it.
type PresenceVerifier struct{}

func (PresenceVerifier) Verify(h http.Header) error {
	if strings.TrimSpace(h.Get(headerAuthorization)) == "" {
		return ErrMissingCredentials
	}
	return nil
}

// HMACVerifier requires a Bearer JWT signed with the shared secret.
type HMACVerifier struct {
	Secret []byte
}

func (v HMACVerifier) Verify(h http.Header) error {
	if err := (PresenceVerifier{}).Verify(h); err != nil {
		return err
	}
	ah := h.Get(headerAuthorization)
	if !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		return fmt.Errorf("authorization scheme is not bearer")
	}
	tokenStr := strings.TrimSpace(ah[len("Bearer "):])
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return v.Secret, nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil {
		return err
	}
	if !token.Valid {
		return jwt.ErrTokenSignatureInvalid
	}
	return nil
}

// Auth rejects requests whose headers fail v with 401. OPTIONS requests pass
// untouched; preflights never get this far and other OPTIONS requests fall
// through to the router.
func Auth(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			if err := v.Verify(r.Header); err != nil {
				logger.L().Debug("authentication failed",
					zap.String("id", GetRequestID(r.Context())),
					zap.Error(err),
				)
				types.WriteError(w, appErr.Wrap(err, appErr.CodeUnauthorized, types.MsgAuthRequired))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
