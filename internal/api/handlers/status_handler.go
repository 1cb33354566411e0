package handlers

import (
	"fmt"
	"net/http"

	"github.com/statusgate/engine/internal/api/types"
	"github.com/statusgate/engine/internal/directive"
)

// StatusHandler serves the /test-status endpoint.
type StatusHandler struct{}

func NewStatusHandler() *StatusHandler { return &StatusHandler{} }

// TestStatus echoes the requested status in the body. It always writes 200;
// the Status middleware swaps in the requested code on the way out.
func (h *StatusHandler) TestStatus(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	if d, ok := directive.FromContext(r.Context()); ok {
		status = d.Code
	}
	types.WriteJSON(w, http.StatusOK, types.MessageResponse{Message: fmt.Sprintf("Status %d", status)})
}
