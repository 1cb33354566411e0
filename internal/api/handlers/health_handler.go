package handlers

import (
	"net/http"

	"github.com/statusgate/engine/internal/api/types"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	types.WriteJSON(w, http.StatusOK, types.StatusResponse{Status: "ok"})
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	types.WriteJSON(w, http.StatusOK, types.StatusResponse{Status: "ready"})
}
