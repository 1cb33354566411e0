package types

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MessageResponse is the success body of the status endpoint.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusResponse is the body of the health endpoints.
type StatusResponse struct {
	Status string `json:"status"`
}

// WriteJSON writes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError renders err through FromAppError.
func WriteError(w http.ResponseWriter, err error) {
	status, body := FromAppError(err)
	WriteJSON(w, status, body)
}
