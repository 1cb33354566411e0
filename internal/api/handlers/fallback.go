package handlers

import (
	"net/http"

	"github.com/statusgate/engine/internal/api/types"
	appErr "github.com/statusgate/engine/pkg/errors"
)

// NotFound is the router's JSON 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	types.WriteError(w, appErr.New(appErr.CodeNotFound, types.MsgNotFound))
}

// MethodNotAllowed is the router's JSON 405.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	types.WriteError(w, appErr.New(appErr.CodeMethodNotAllowed, types.MsgMethodNotAllowed))
}
